package rating

import (
	"time"

	"github.com/shopspring/decimal"
)

// Applications are the immutable facts collected by a quotation
// workflow. Every application carries AsOf: ages are derived from the
// caller-supplied date, never from the wall clock, so a computation
// can be replayed months later bit for bit.

// MedicalApplication covers individual and family medical quotes
type MedicalApplication struct {
	AsOf          time.Time `json:"as_of"`
	DateOfBirth   time.Time `json:"date_of_birth"`
	Gender        string    `json:"gender"`
	PlanType      string    `json:"plan_type"`
	MemberType    string    `json:"member_type"` // individual or family
	CoverageLevel string    `json:"coverage_level,omitempty"`
	Smoker        bool      `json:"smoker"`
	AlcoholUse    bool      `json:"alcohol_use"`
	Chronic       bool      `json:"chronic_conditions"`
	PreExisting   bool      `json:"pre_existing_conditions"`
}

// EmployeeCategoryCount is one workforce slice in a WIBA application
type EmployeeCategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// WIBAApplication covers workplace injury benefits quotes
type WIBAApplication struct {
	AsOf               time.Time               `json:"as_of"`
	EmployeeCategories []EmployeeCategoryCount `json:"employee_categories"`
	Industry           string                  `json:"industry"`
	CoverageType       string                  `json:"coverage_type"`
	ExperienceRating   string                  `json:"experience_rating"`
	SafetyMeasures     []string                `json:"safety_measures,omitempty"`
}

// MotorApplication covers motor and special equipment quotes.
// Value-rated categories require VehicleValue; flat-rated special
// equipment categories ignore it.
type MotorApplication struct {
	AsOf              time.Time       `json:"as_of"`
	VehicleCategory   string          `json:"vehicle_category"`
	VehicleValue      decimal.Decimal `json:"vehicle_value"`
	YearOfManufacture int             `json:"year_of_manufacture"`
	Usage             string          `json:"usage,omitempty"`
	SecurityFeatures  []string        `json:"security_features,omitempty"`
}

// TravelApplication covers travel quotes; premium accrues per day
type TravelApplication struct {
	AsOf               time.Time `json:"as_of"`
	Destination        string    `json:"destination"`
	PlanType           string    `json:"plan_type"`
	TripDays           int       `json:"trip_days"`
	TripType           string    `json:"trip_type"`
	HighRiskActivities bool      `json:"high_risk_activities"`
	PreExisting        bool      `json:"pre_existing_conditions"`
}

// PersonalAccidentApplication covers personal accident quotes; the
// tier key is the chosen coverage amount
type PersonalAccidentApplication struct {
	AsOf                time.Time `json:"as_of"`
	DateOfBirth         time.Time `json:"date_of_birth"`
	CoverageTier        string    `json:"coverage_tier"`
	Occupation          string    `json:"occupation"`
	HealthConditions    bool      `json:"health_conditions"`
	HazardousActivities bool      `json:"hazardous_activities"`
}

// LastExpenseApplication covers last expense (funeral) quotes
type LastExpenseApplication struct {
	AsOf               time.Time `json:"as_of"`
	DateOfBirth        time.Time `json:"date_of_birth"`
	PlanType           string    `json:"plan_type"`
	AdditionalBenefits []string  `json:"additional_benefits,omitempty"`
	PaymentFrequency   string    `json:"payment_frequency"`
}
