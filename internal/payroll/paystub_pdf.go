package payroll

import (
	"bytes"
	"fmt"
	"strings"
)

func centsToDollars(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

func stubPDFLines(stub *PayStub, period *PayrollPeriod) []string {
	lines := []string{
		"Pay Stub",
		fmt.Sprintf("Employee: %s", stub.EmployeeID),
		fmt.Sprintf("Period: %s to %s", period.StartDate.Format("2006-01-02"), period.EndDate.Format("2006-01-02")),
		fmt.Sprintf("Pay Date: %s", period.PayDate.Format("2006-01-02")),
		"",
	}

	if stub.HourlyRateCents > 0 {
		lines = append(lines,
			fmt.Sprintf("Hours Worked: %.2f (overtime %.2f)", stub.HoursWorked, stub.OvertimeHours),
			fmt.Sprintf("Hourly Rate: %s", centsToDollars(stub.HourlyRateCents)),
		)
	}

	lines = append(lines,
		fmt.Sprintf("Gross Pay: %s", centsToDollars(stub.GrossPayCents)),
		fmt.Sprintf("Federal Tax: %s", centsToDollars(stub.FederalTaxCents)),
		fmt.Sprintf("State Tax: %s", centsToDollars(stub.StateTaxCents)),
		fmt.Sprintf("Social Security: %s", centsToDollars(stub.SocialSecurityCents)),
		fmt.Sprintf("Medicare: %s", centsToDollars(stub.MedicareCents)),
		fmt.Sprintf("Benefits: %s", centsToDollars(stub.BenefitsDeductionsCents)),
		fmt.Sprintf("Net Pay: %s", centsToDollars(stub.NetPayCents)),
	)

	if stub.ReversedAt != nil {
		lines = append(lines, "", "*** REVERSED ***")
	}
	return lines
}

// buildPayStubPDF renders a single-page PDF by hand. The layout is plain
// Helvetica text; no external PDF library is needed for this.
func buildPayStubPDF(stub *PayStub, period *PayrollPeriod) ([]byte, error) {
	lines := stubPDFLines(stub, period)

	var content strings.Builder
	content.WriteString("BT\n/F1 12 Tf\n14 TL\n50 800 Td\n")
	for i, line := range lines {
		escaped := pdfEscape(line)
		if i == 0 {
			content.WriteString(fmt.Sprintf("(%s) Tj\n", escaped))
			continue
		}
		content.WriteString(fmt.Sprintf("T* (%s) Tj\n", escaped))
	}
	content.WriteString("ET")

	stream := content.String()
	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 595 842] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>\nendobj\n",
		"4 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n",
		fmt.Sprintf("5 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n", len(stream), stream),
	}

	var out bytes.Buffer
	out.WriteString("%PDF-1.4\n")
	offsets := make([]int, 0, len(objects)+1)
	offsets = append(offsets, 0)

	for _, obj := range objects {
		offsets = append(offsets, out.Len())
		out.WriteString(obj)
	}

	xrefStart := out.Len()
	out.WriteString(fmt.Sprintf("xref\n0 %d\n", len(offsets)))
	out.WriteString("0000000000 65535 f \n")
	for i := 1; i < len(offsets); i++ {
		out.WriteString(fmt.Sprintf("%010d 00000 n \n", offsets[i]))
	}
	out.WriteString(fmt.Sprintf("trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF", len(offsets), xrefStart))

	return out.Bytes(), nil
}

func pdfEscape(v string) string {
	replacer := strings.NewReplacer("\\", "\\\\", "(", "\\(", ")", "\\)")
	return replacer.Replace(v)
}
