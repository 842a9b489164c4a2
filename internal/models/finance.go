package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CalculationLog is an append-only snapshot of one financial projection:
// every input and output of the calculator, scoped to the principal who
// submitted it. Rows are never mutated, only bulk-cleared per movie.
type CalculationLog struct {
	Base
	MovieID   string `gorm:"column:movieid;type:uuid;not null;index" json:"movieId"`
	Movie     *Movie `json:"movie,omitempty"`
	CreatedBy string `gorm:"column:createdby;size:50" json:"createdBy"`

	BoxOffice              decimal.Decimal     `gorm:"column:boxoffice;type:numeric(15,2)" json:"boxOffice"`
	ProductionBudget       decimal.Decimal     `gorm:"column:productionbudget;type:numeric(15,2)" json:"productionBudget"`
	MarketingBudget        decimal.Decimal     `gorm:"column:marketingbudget;type:numeric(15,2)" json:"marketingBudget"`
	DistributionFeePercent decimal.Decimal     `gorm:"column:distributionfeepercent;type:numeric(5,4)" json:"distributionFeePercent"`
	TaxPercent             decimal.Decimal     `gorm:"column:taxpercent;type:numeric(5,4)" json:"taxPercent"`
	ActorsSalary           decimal.Decimal     `gorm:"column:actorssalary;type:numeric(15,2)" json:"actorsSalary"`
	StudioRevenue          decimal.Decimal     `gorm:"column:studiorevenue;type:numeric(15,2)" json:"studioRevenue"`
	ProfitBeforeTax        decimal.Decimal     `gorm:"column:profitbeforetax;type:numeric(15,2)" json:"profitBeforeTax"`
	TaxAmount              decimal.Decimal     `gorm:"column:taxamount;type:numeric(15,2)" json:"taxAmount"`
	NetProfit              decimal.Decimal     `gorm:"column:netprofit;type:numeric(15,2)" json:"netProfit"`
	ROI                    decimal.Decimal     `gorm:"column:roi;type:numeric(18,6)" json:"roi"`
}

func (CalculationLog) TableName() string {
	return "calculationlogs"
}

// TaskRun records one execution of a background maintenance task.
type TaskRun struct {
	Base
	TaskType string         `gorm:"not null;index" json:"taskType"`
	Status   JobStatus      `gorm:"not null;default:'QUEUED'" json:"status"`
	Report   datatypes.JSON `gorm:"type:jsonb" json:"report,omitempty"`
	Error    string         `json:"error,omitempty"`
}
