package composer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	feemodel "hostelku_backend/internals/features/fees/model"
	studentmodel "hostelku_backend/internals/features/students/model"
)

func fixedClock() func() time.Time {
	at := time.Date(2025, time.March, 14, 16, 5, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func testStudent() *studentmodel.Student {
	return &studentmodel.Student{
		ID:           "stu-1",
		Name:         "Ravi Kumar",
		RollNumber:   "21CS045",
		RoomNumber:   "B-204",
		AcademicYear: "2024-25",
		Category:     "General",
	}
}

func testHostelPayment() feemodel.PaymentRecord {
	return feemodel.PaymentRecord{
		ID:            "pay-1",
		ReceiptNumber: "RCP-2025-001",
		TransactionID: "TXN-88421",
		Amount:        4000,
		Term:          1,
		PaymentType:   feemodel.PaymentTypeHostelFee,
		Status:        feemodel.PaymentStatusSuccess,
		PaymentMethod: "UPI",
		UTRNumber:     "UTR123456",
		PaymentDate:   time.Date(2025, time.February, 1, 10, 30, 0, 0, time.UTC),
		CollectedBy:   "Office",
	}
}

func TestComposeReceipt(t *testing.T) {
	c := New(Config{InstitutionName: "Sunrise Boys Hostel"}).WithClock(fixedClock())

	data, name, err := c.ComposeReceipt(testHostelPayment(), testStudent())
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.Equal(t, "%PDF-", string(data[:5]))
	assert.Equal(t, "payment_receipt_RCP-2025-001.pdf", name)
}

func TestComposeReceiptDeterministic(t *testing.T) {
	c := New(Config{InstitutionName: "Sunrise Boys Hostel"}).WithClock(fixedClock())

	first, _, err := c.ComposeReceipt(testHostelPayment(), testStudent())
	require.NoError(t, err)
	second, _, err := c.ComposeReceipt(testHostelPayment(), testStudent())
	require.NoError(t, err)

	assert.Equal(t, first, second, "same inputs and clock must yield identical bytes")
}

func TestComposeReceiptWithoutStudent(t *testing.T) {
	c := New(Config{}).WithClock(fixedClock())

	data, _, err := c.ComposeReceipt(testHostelPayment(), nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestComposeReceiptInvalidPayment(t *testing.T) {
	c := New(Config{})

	_, _, err := c.ComposeReceipt(feemodel.PaymentRecord{Amount: 500}, testStudent())
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestComposeReceiptElectricityPartialBill(t *testing.T) {
	consumption := 120.0
	total := 960.0
	p := testHostelPayment()
	p.PaymentType = feemodel.PaymentTypeElectricity
	p.Term = 0
	p.BillMonth = "January 2025"
	p.BillDetails = &feemodel.BillDetails{Consumption: &consumption, Total: &total}

	c := New(Config{}).WithClock(fixedClock())
	data, _, err := c.ComposeReceipt(p, testStudent())
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestBillDetailRowsOmitAbsentComponents(t *testing.T) {
	consumption := 120.0
	total := 960.0
	p := feemodel.PaymentRecord{
		ID:          "pay-2",
		Amount:      480,
		PaymentType: feemodel.PaymentTypeElectricity,
		BillDetails: &feemodel.BillDetails{Consumption: &consumption, Total: &total},
	}

	rows := billDetailRows(p)
	require.Len(t, rows, 3)
	assert.Equal(t, "Units Consumed", rows[0][0])
	assert.Equal(t, "Total Bill Amount", rows[1][0])
	assert.Equal(t, "Student's Share", rows[2][0])
	for _, row := range rows {
		assert.NotEqual(t, "Rate per Unit", row[0])
	}
}

func TestBillDetailRowsEmptyCases(t *testing.T) {
	assert.Nil(t, billDetailRows(testHostelPayment()), "hostel fee payments carry no bill section")

	p := feemodel.PaymentRecord{ID: "pay-3", PaymentType: feemodel.PaymentTypeElectricity}
	assert.Nil(t, billDetailRows(p), "electricity without details gets no section")

	p.BillDetails = &feemodel.BillDetails{}
	assert.Empty(t, billDetailRows(p), "all-absent details yield no rows, including the share line")
}

func TestReceiptFilenameFallbacks(t *testing.T) {
	p := testHostelPayment()
	assert.Equal(t, "payment_receipt_RCP-2025-001.pdf", receiptFilename(p, 99))

	p.ReceiptNumber = ""
	assert.Equal(t, "payment_receipt_pay-1.pdf", receiptFilename(p, 99))

	p.ID = ""
	assert.Equal(t, "payment_receipt_99.pdf", receiptFilename(p, 99))
}

func TestPaymentRowsOrder(t *testing.T) {
	rows := paymentRows(testHostelPayment())
	labels := make([]string, 0, len(rows))
	for _, row := range rows {
		labels = append(labels, row[0])
	}
	assert.Equal(t, []string{
		"Amount Paid", "Term", "Payment Method", "UTR Number", "Status", "Collected By",
	}, labels)

	p := testHostelPayment()
	p.UTRNumber = ""
	for _, row := range paymentRows(p) {
		assert.NotEqual(t, "UTR Number", row[0])
	}
}

func TestPaymentTypeLabel(t *testing.T) {
	assert.Equal(t, "Hostel Fee", paymentTypeLabel(feemodel.PaymentTypeHostelFee))
	assert.Equal(t, "Electricity Bill", paymentTypeLabel(feemodel.PaymentTypeElectricity))
	assert.Equal(t, "N/A", paymentTypeLabel(""))
	assert.Equal(t, "mess_fee", paymentTypeLabel("mess_fee"))
}
