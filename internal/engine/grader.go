package engine

import "github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"

// Lower bounds (inclusive) of each grade, in ROI percent
const (
	okROI        = 4.0
	goodROI      = 7.0
	greatROI     = 16.0
	excellentROI = 25.0
)

// GradeROI maps an expected ROI percentage to a grade
func GradeROI(roi float64) models.Grade {
	switch {
	case roi >= excellentROI:
		return models.GradeExcellent
	case roi >= greatROI:
		return models.GradeGreat
	case roi >= goodROI:
		return models.GradeGood
	case roi >= okROI:
		return models.GradeOK
	default:
		// includes NaN
		return models.GradePoor
	}
}
