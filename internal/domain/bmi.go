package domain

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BMI category labels, per the documented breakpoints:
// <18.5 underweight, <25 normal, <30 overweight, else obese.
const (
	BMIUnderweight = "Underweight"
	BMINormal      = "Normal weight"
	BMIOverweight  = "Overweight"
	BMIObese       = "Obese"
)

var ErrInvalidMeasurement = errors.New("height and weight must be positive")

// ComputeBMI calculates the body mass index for a height in centimeters and
// a weight in kilograms.
func ComputeBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, ErrInvalidMeasurement
	}
	heightM := heightCm / 100
	return weightKg / (heightM * heightM), nil
}

// BMICategory maps a BMI value to its category label.
func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// BMIRecord is one persisted calculation. Anonymous calculations are returned
// to the caller but never persisted.
type BMIRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	HeightCm     float64            `bson:"heightCm" json:"heightCm"`
	WeightKg     float64            `bson:"weightKg" json:"weightKg"`
	BMI          float64            `bson:"bmi" json:"bmi"`
	Category     string             `bson:"category" json:"category"`
	CalculatedAt time.Time          `bson:"calculatedAt" json:"calculatedAt"`
}
