package allocation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostelku_backend/internals/features/fees/model"
)

func f64(v float64) *float64 { return &v }

var standardStructure = model.FeeStructure{
	AcademicYear: "2025-26",
	Category:     "GEN",
	Term1Fee:     4000,
	Term2Fee:     3000,
	Term3Fee:     3000,
	TotalFee:     10000,
}

func TestComputeTermFees_NoStructure(t *testing.T) {
	fees, err := ComputeTermFees(nil, model.StudentFeeProfile{Concession: 500})
	assert.ErrorIs(t, err, ErrNoFeeStructure)
	assert.Zero(t, fees.Total())
}

func TestComputeTermFees_ConcessionCascade(t *testing.T) {
	// Scenario A: 5000 concession wipes term1 and eats 1000 of term2.
	fees, err := ComputeTermFees(&standardStructure, model.StudentFeeProfile{Concession: 5000})
	require.NoError(t, err)
	assert.Equal(t, 0.0, fees.Term1)
	assert.Equal(t, 2000.0, fees.Term2)
	assert.Equal(t, 3000.0, fees.Term3)
}

func TestComputeTermFees_ConcessionExceedsTotal(t *testing.T) {
	// Scenario B: concession beyond the total never drives a term negative.
	fees, err := ComputeTermFees(&standardStructure, model.StudentFeeProfile{Concession: 12000})
	require.NoError(t, err)
	assert.Equal(t, TermFees{}, fees)
}

func TestComputeTermFees_Conservation(t *testing.T) {
	// P1: term1+term2+term3 == total - concession for every concession
	// within the total. P2: saturates at zero above it.
	for concession := 0.0; concession <= 12000; concession += 250 {
		fees, err := ComputeTermFees(&standardStructure, model.StudentFeeProfile{Concession: concession})
		require.NoError(t, err)

		expected := standardStructure.TotalFee - concession
		if expected < 0 {
			expected = 0
		}
		assert.InDelta(t, expected, fees.Total(), 1e-9, "concession=%v", concession)
		assert.GreaterOrEqual(t, fees.Term1, 0.0)
		assert.GreaterOrEqual(t, fees.Term2, 0.0)
		assert.GreaterOrEqual(t, fees.Term3, 0.0)
	}
}

func TestComputeTermFees_PrecomputedWins(t *testing.T) {
	profile := model.StudentFeeProfile{
		Concession:         5000,
		CalculatedTerm1Fee: f64(1000),
		CalculatedTerm2Fee: f64(2000),
		CalculatedTerm3Fee: f64(2000),
	}
	fees, err := ComputeTermFees(&standardStructure, profile)
	require.NoError(t, err)
	assert.Equal(t, TermFees{Term1: 1000, Term2: 2000, Term3: 2000}, fees)
}

func TestComputeTermFees_PartialPrecomputedIgnored(t *testing.T) {
	profile := model.StudentFeeProfile{
		Concession:         5000,
		CalculatedTerm1Fee: f64(1000), // term2/term3 missing
	}
	fees, err := ComputeTermFees(&standardStructure, profile)
	require.NoError(t, err)
	assert.Equal(t, TermFees{Term1: 0, Term2: 2000, Term3: 3000}, fees)
}

func TestAllocatePayments_ExcessCarriesForward(t *testing.T) {
	// Scenario C: 5000 against a 4000 term1 leaves 1000 for term2.
	required := TermFees{Term1: 4000, Term2: 3000, Term3: 3000}
	paid := TermFees{Term1: 5000}

	terms := AllocatePayments(required, paid)
	require.Len(t, terms, 3)

	assert.Equal(t, 4000.0, terms[0].Paid)
	assert.Equal(t, model.TermStatusPaid, terms[0].Status)

	assert.Equal(t, 1000.0, terms[1].Paid)
	assert.Equal(t, 2000.0, terms[1].Remaining)
	assert.Equal(t, model.TermStatusPartial, terms[1].Status)

	assert.Equal(t, 0.0, terms[2].Paid)
	assert.Equal(t, model.TermStatusUnpaid, terms[2].Status)

	summary := Summarize(terms)
	assert.Equal(t, 2000.0, summary.PendingAmount)
}

func TestAllocatePayments_CascadeNeverBackward(t *testing.T) {
	// P3: excess on term2 covers term3, never term1.
	required := TermFees{Term1: 4000, Term2: 3000, Term3: 3000}
	paid := TermFees{Term2: 10000}

	terms := AllocatePayments(required, paid)
	assert.Equal(t, model.TermStatusUnpaid, terms[0].Status)
	assert.Equal(t, 3000.0, terms[1].Paid)
	assert.Equal(t, model.TermStatusPaid, terms[1].Status)
	assert.Equal(t, 3000.0, terms[2].Paid)
	assert.Equal(t, model.TermStatusPaid, terms[2].Status)
}

func TestAllocatePayments_AppliedNeverExceedsRequired(t *testing.T) {
	// P3: unbounded excess still caps applied at required per term.
	required := TermFees{Term1: 4000, Term2: 3000, Term3: 3000}
	paid := TermFees{Term1: 1_000_000}

	for _, term := range AllocatePayments(required, paid) {
		assert.LessOrEqual(t, term.Paid, term.Required)
	}
}

func TestAllocatePayments_WaivedTermIsPaid(t *testing.T) {
	// P4: required == 0 always reads Paid, with and without payments.
	required := TermFees{Term1: 0, Term2: 3000, Term3: 0}
	terms := AllocatePayments(required, TermFees{})
	assert.Equal(t, model.TermStatusPaid, terms[0].Status)
	assert.Equal(t, model.TermStatusUnpaid, terms[1].Status)
	assert.Equal(t, model.TermStatusPaid, terms[2].Status)
}

func TestSummarize_PendingNeverNegative(t *testing.T) {
	// P5: overpayment clamps pending at zero.
	required := TermFees{Term1: 1000, Term2: 1000, Term3: 1000}
	terms := AllocatePayments(required, TermFees{Term1: 9000})
	summary := Summarize(terms)
	assert.Equal(t, 0.0, summary.PendingAmount)
	assert.Equal(t, 3000.0, summary.PaidAmount)
}

func TestSumTermPayments_FiltersTypeAndStatus(t *testing.T) {
	payments := []model.PaymentRecord{
		{Amount: 4000, Term: 1, PaymentType: model.PaymentTypeHostelFee, Status: model.PaymentStatusSuccess},
		{Amount: 1500, Term: 2, PaymentType: model.PaymentTypeHostelFee, Status: model.PaymentStatusSuccess},
		{Amount: 1500, Term: 2, PaymentType: model.PaymentTypeHostelFee, Status: model.PaymentStatusPending},
		{Amount: 900, Term: 1, PaymentType: model.PaymentTypeElectricity, Status: model.PaymentStatusSuccess},
		{Amount: 700, Term: 0, PaymentType: model.PaymentTypeHostelFee, Status: model.PaymentStatusSuccess},
	}
	paid := SumTermPayments(payments)
	assert.Equal(t, TermFees{Term1: 4000, Term2: 1500}, paid)
}

func TestSumTermPayments_MixedTermFormsShareBucket(t *testing.T) {
	// Records whose term arrived as "term2" and as 2 are already normalized
	// at the boundary; both land in the same bucket here.
	payments := []model.PaymentRecord{
		{Amount: 1000, Term: model.NormalizeTerm("term2"), PaymentType: model.PaymentTypeHostelFee, Status: model.PaymentStatusSuccess},
		{Amount: 500, Term: model.NormalizeTerm(2), PaymentType: model.PaymentTypeHostelFee, Status: model.PaymentStatusSuccess},
	}
	assert.Equal(t, 1500.0, SumTermPayments(payments).Term2)
}
