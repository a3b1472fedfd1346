package report

import (
	"time"

	"shgledger/internal/money"

	"github.com/beevik/etree"
)

// Compile renders a point-in-time snapshot of a group's ledger into a
// static XHTML document. All numbers arrive pre-computed; nothing here
// touches the ledger or applies business rules.

type Summary struct {
	Savings   int64
	LoanGiven int64
	Cash      int64
}

type MemberRow struct {
	Name    string
	Deposit int64
	Loan    int64
	Repaid  int64
	Balance int64
}

type LoanRow struct {
	Name         string
	Amount       int64
	InterestPaid int64
	Status       string
}

type Input struct {
	GroupName  string
	Village    string
	PeriodFrom time.Time
	PeriodTo   time.Time
	Summary    Summary
	MemberRows []MemberRow
	LoanRows   []LoanRow
}

func Compile(input Input) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	html := doc.CreateElement("html")

	head := html.CreateElement("head")
	title := head.CreateElement("title")
	title.SetText(input.GroupName + " - Group Report")

	body := html.CreateElement("body")
	heading := body.CreateElement("h1")
	heading.SetText(input.GroupName)
	sub := body.CreateElement("p")
	sub.SetText(input.Village + " | " + input.PeriodFrom.Format("Jan 2006") + " to " + input.PeriodTo.Format("Jan 2006"))

	summary := body.CreateElement("table")
	summary.CreateAttr("id", "summary")
	summaryRow(summary, "Total Savings", input.Summary.Savings)
	summaryRow(summary, "Total Loan Given", input.Summary.LoanGiven)
	summaryRow(summary, "Cash in Hand", input.Summary.Cash)

	membersHeading := body.CreateElement("h2")
	membersHeading.SetText("Members")
	members := body.CreateElement("table")
	members.CreateAttr("id", "members")
	headerRow(members, "Member", "Deposits", "Loan Taken", "Principal Repaid", "Outstanding")
	for _, row := range input.MemberRows {
		tr := members.CreateElement("tr")
		cell(tr, row.Name)
		cell(tr, money.Format(row.Deposit))
		cell(tr, money.Format(row.Loan))
		cell(tr, money.Format(row.Repaid))
		cell(tr, money.Format(row.Balance))
	}

	loansHeading := body.CreateElement("h2")
	loansHeading.SetText("Loans")
	loans := body.CreateElement("table")
	loans.CreateAttr("id", "loans")
	headerRow(loans, "Member", "Amount", "Interest Paid", "Status")
	for _, row := range input.LoanRows {
		tr := loans.CreateElement("tr")
		cell(tr, row.Name)
		cell(tr, money.Format(row.Amount))
		cell(tr, money.Format(row.InterestPaid))
		cell(tr, row.Status)
	}

	doc.Indent(2)
	return doc.WriteToBytes()
}

func summaryRow(table *etree.Element, label string, value int64) {
	tr := table.CreateElement("tr")
	th := tr.CreateElement("th")
	th.SetText(label)
	td := tr.CreateElement("td")
	td.SetText("Rs " + money.Format(value))
}

func headerRow(table *etree.Element, labels ...string) {
	tr := table.CreateElement("tr")
	for _, label := range labels {
		th := tr.CreateElement("th")
		th.SetText(label)
	}
}

func cell(tr *etree.Element, text string) {
	td := tr.CreateElement("td")
	td.SetText(text)
}
