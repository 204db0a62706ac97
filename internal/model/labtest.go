package model

// LabTest is a laboratory test master record.
type LabTest struct {
	Base
	Name       string  `db:"name" json:"name"`
	Code       string  `db:"code" json:"code"`
	Category   string  `db:"category" json:"category"`
	SampleType string  `db:"sample_type" json:"sample_type"`
	Unit       string  `db:"unit" json:"unit,omitempty"`
	RefRange   string  `db:"ref_range" json:"ref_range,omitempty"`
	Price      float64 `db:"price" json:"price"`
	Active     bool    `db:"active" json:"active"`
	Timestamps
}

type CreateLabTestRequest struct {
	Name       string  `json:"name" binding:"required"`
	Code       string  `json:"code" binding:"required"`
	Category   string  `json:"category" binding:"required"`
	SampleType string  `json:"sample_type" binding:"required"`
	Unit       string  `json:"unit"`
	RefRange   string  `json:"ref_range"`
	Price      float64 `json:"price" binding:"gte=0"`
}

type UpdateLabTestRequest struct {
	Name       *string  `json:"name"`
	Category   *string  `json:"category"`
	SampleType *string  `json:"sample_type"`
	Unit       *string  `json:"unit"`
	RefRange   *string  `json:"ref_range"`
	Price      *float64 `json:"price"`
	Active     *bool    `json:"active"`
}
