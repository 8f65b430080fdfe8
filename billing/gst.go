// Package billing holds the front desk's money rules: GST on the nightly
// rate, stay-length reconciliation and the checkout bill.
package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// HomeState is the hotel's own state. Guests from it pay CGST+SGST, everyone else IGST.
const HomeState = "KARNATAKA"

var (
	gstRate     = decimal.RequireFromString("0.05")
	halfGSTRate = decimal.RequireFromString("0.025")
	gstPercent  = decimal.NewFromInt(5)
)

// GST is the per-day tax split for one room rate.
type GST struct {
	CGST             float64 `json:"cgst"`
	SGST             float64 `json:"sgst"`
	IGST             float64 `json:"igst"`
	GSTPercent       float64 `json:"gstPercent"`
	TotalGST         float64 `json:"totalGST"`
	FinalDailyCharge float64 `json:"finalDailyCharge"`
}

// NormalizeState trims and upper-cases a free-text state. Blank resolves to HomeState.
func NormalizeState(state string) string {
	s := strings.ToUpper(strings.TrimSpace(state))
	if s == "" {
		return HomeState
	}
	return s
}

// IsIntraState reports whether the guest's state gets the CGST+SGST split.
func IsIntraState(state string) bool {
	return NormalizeState(state) == HomeState
}

// CalculateGST applies the 5% rule to baseDailyRate. A non-positive rate yields all zeros.
func CalculateGST(guestState string, baseDailyRate float64) GST {
	split := calculateGST(guestState, decimal.NewFromFloat(baseDailyRate))
	return split.float()
}

type gstSplit struct {
	cgst, sgst, igst, percent, base decimal.Decimal
}

func (g gstSplit) total() decimal.Decimal {
	return g.cgst.Add(g.sgst).Add(g.igst)
}

func (g gstSplit) float() GST {
	if !g.base.IsPositive() {
		return GST{}
	}
	return GST{
		CGST:             g.cgst.InexactFloat64(),
		SGST:             g.sgst.InexactFloat64(),
		IGST:             g.igst.InexactFloat64(),
		GSTPercent:       g.percent.InexactFloat64(),
		TotalGST:         g.total().InexactFloat64(),
		FinalDailyCharge: g.base.Add(g.total()).InexactFloat64(),
	}
}

func calculateGST(guestState string, base decimal.Decimal) gstSplit {
	if !base.IsPositive() {
		return gstSplit{base: base}
	}
	if IsIntraState(guestState) {
		half := base.Mul(halfGSTRate)
		return gstSplit{cgst: half, sgst: half, percent: gstPercent, base: base}
	}
	return gstSplit{igst: base.Mul(gstRate), percent: gstPercent, base: base}
}
