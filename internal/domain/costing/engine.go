package costing

import "math"

// Input carries everything Calculate reads: the claim's requested amount,
// the policy's cost-sharing parameters and the member's year-to-date
// accumulations. Assembling it is the caller's job so the engine stays pure.
type Input struct {
	RequestedAmount     float64
	AnnualDeductible    float64
	DeductibleMetYTD    float64
	CoPayPercent        float64
	OutOfNetworkPenalty float64
	InNetwork           bool
	OutOfPocketMax      float64
	OutOfPocketYTD      float64
	Network             string
}

// Breakdown is the immutable result of one adjudication calculation. It is
// never persisted directly; its outputs are copied onto the claim at
// approval time.
type Breakdown struct {
	RequestedAmount       float64 `json:"requested_amount"`
	AnnualDeductible      float64 `json:"annual_deductible"`
	DeductibleMetYTD      float64 `json:"deductible_met_ytd"`
	DeductibleApplied     float64 `json:"deductible_applied"`
	CoPayPercent          float64 `json:"co_pay_percent"`
	CoPayAmount           float64 `json:"co_pay_amount"`
	InsurerAmount         float64 `json:"insurer_amount"`
	PatientResponsibility float64 `json:"patient_responsibility"`
	OutOfPocketMax        float64 `json:"out_of_pocket_max"`
	OutOfPocketYTD        float64 `json:"out_of_pocket_ytd"`
	Network               string  `json:"network"`
}

// Engine computes the deductible/co-pay/out-of-pocket split for a claim.
// Calculate is a pure function: identical inputs always produce identical
// output, and nothing is persisted here.
type Engine struct{}

// NewEngine creates a cost calculation engine
func NewEngine() *Engine {
	return &Engine{}
}

// Calculate runs the adjudication arithmetic:
//
//  1. Non-positive requested amounts yield an all-zero breakdown.
//  2. Remaining deductible is the annual deductible minus the amount already
//     met this period, floored at zero.
//  3. The deductible is applied before any co-insurance.
//  4. Co-pay applies to the post-deductible amount; out-of-network claims add
//     the policy's penalty percentage, capped at 100.
//  5. Patient cost-sharing above the out-of-pocket maximum shifts back onto
//     the insurer.
//  6. The patient-side figure is authoritative: any rounding residue is
//     absorbed by the insurer amount so that patient + insurer == requested.
func (e *Engine) Calculate(in Input) Breakdown {
	bd := Breakdown{
		RequestedAmount:  round2(in.RequestedAmount),
		AnnualDeductible: round2(in.AnnualDeductible),
		DeductibleMetYTD: round2(in.DeductibleMetYTD),
		OutOfPocketMax:   round2(in.OutOfPocketMax),
		OutOfPocketYTD:   round2(in.OutOfPocketYTD),
		Network:          in.Network,
	}

	if in.RequestedAmount <= 0 {
		return Breakdown{Network: in.Network}
	}

	remainingDeductible := math.Max(0, bd.AnnualDeductible-bd.DeductibleMetYTD)
	bd.DeductibleApplied = round2(math.Min(bd.RequestedAmount, remainingDeductible))
	afterDeductible := round2(bd.RequestedAmount - bd.DeductibleApplied)

	coPayPercent := in.CoPayPercent
	if !in.InNetwork {
		coPayPercent += in.OutOfNetworkPenalty
	}
	if coPayPercent > 100 {
		coPayPercent = 100
	}
	if coPayPercent < 0 {
		coPayPercent = 0
	}
	bd.CoPayPercent = coPayPercent
	bd.CoPayAmount = round2(afterDeductible * coPayPercent / 100)
	bd.InsurerAmount = round2(afterDeductible - bd.CoPayAmount)

	// Out-of-pocket ceiling: cost-sharing past the maximum is covered by the
	// insurer. Relief comes out of the co-pay first, then the deductible.
	patientShare := round2(bd.DeductibleApplied + bd.CoPayAmount)
	if bd.OutOfPocketMax > 0 && bd.OutOfPocketYTD+patientShare > bd.OutOfPocketMax {
		excess := round2(bd.OutOfPocketYTD + patientShare - bd.OutOfPocketMax)
		if excess > patientShare {
			excess = patientShare
		}
		coPayRelief := math.Min(excess, bd.CoPayAmount)
		bd.CoPayAmount = round2(bd.CoPayAmount - coPayRelief)
		bd.DeductibleApplied = round2(bd.DeductibleApplied - (excess - coPayRelief))
		bd.InsurerAmount = round2(bd.InsurerAmount + excess)
	}

	bd.PatientResponsibility = round2(bd.DeductibleApplied + bd.CoPayAmount)

	// Reconciliation: the patient figure is authoritative, the insurer amount
	// absorbs any residual cent.
	bd.InsurerAmount = round2(bd.RequestedAmount - bd.PatientResponsibility)

	return bd
}

// Round2 rounds a monetary amount to two decimal places, half away from
// zero. All amounts in the engine are normalized through it.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round2(v float64) float64 { return Round2(v) }
