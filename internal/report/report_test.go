package report

import (
	"strings"
	"testing"
	"time"
)

func TestCompileRendersAllSections(t *testing.T) {
	doc, err := Compile(Input{
		GroupName:  "Mahila Bachat Gat",
		Village:    "Wai",
		PeriodFrom: time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
		PeriodTo:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Summary:    Summary{Savings: 125000, LoanGiven: 40000, Cash: 85000},
		MemberRows: []MemberRow{
			{Name: "Sita Pawar", Deposit: 6000, Loan: 10000, Repaid: 4000, Balance: 6000},
		},
		LoanRows: []LoanRow{
			{Name: "Sita Pawar", Amount: 10000, InterestPaid: 600, Status: "active"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(doc)
	for _, want := range []string{
		"Mahila Bachat Gat",
		"Wai | Apr 2023 to Mar 2024",
		"Rs 1,25,000",
		"Rs 85,000",
		"Sita Pawar",
		"active",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("document missing %q:\n%s", want, text)
		}
	}
}

func TestCompileEmptyGroup(t *testing.T) {
	doc, err := Compile(Input{GroupName: "New Group", Village: "Wai"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(doc), "Rs 0") {
		t.Fatalf("empty group should render zero totals:\n%s", doc)
	}
}
