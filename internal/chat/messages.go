package chat

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/kent242/moneychat/internal/ai"
)

// Chat responses are Vietnamese; the UI shows them verbatim.
const (
	savedPrefix     = "✅ Đã lưu"
	amountPrefix    = "💰 Số tiền:"
	categoryPrefix  = "📂 Danh mục:"
	merchantPrefix  = "🏪 Người bán:"
	reasoningPrefix = "💡"
	totalPrefix     = "💰 Tổng cộng:"

	// InvalidAmountMessage is shown when no positive amount could be
	// extracted from the user's message.
	InvalidAmountMessage = "❌ Không thể xác định số tiền hợp lệ.\n\nVui lòng nhập lại với format rõ ràng hơn.\nVí dụ: 'Bún bò 45k' hoặc 'Cafe 25000'"
)

// Formatter renders amounts in the configured locale and currency.
type Formatter struct {
	printer *message.Printer
	symbol  string
}

// NewFormatter builds a Formatter for a BCP 47 locale tag. Unknown
// tags fall back to Vietnamese.
func NewFormatter(locale, currencyCode string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Vietnamese
	}
	symbol := currencyCode
	if currencyCode == "VND" {
		symbol = "₫"
	}
	return &Formatter{printer: message.NewPrinter(tag), symbol: symbol}
}

// Amount renders a whole-currency amount with locale grouping, e.g.
// 45000 as "45.000 ₫" under vi-VN.
func (f *Formatter) Amount(v int64) string {
	return f.printer.Sprint(number.Decimal(v)) + " " + f.symbol
}

// singleMessage builds the confirmation for one saved draft.
func (f *Formatter) singleMessage(d ai.Draft) string {
	kindText := "chi tiêu"
	if d.Kind == "income" {
		kindText = "thu nhập"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s: %s\n", savedPrefix, kindText, d.Description)
	fmt.Fprintf(&b, "%s %s\n", amountPrefix, f.Amount(d.Amount))
	fmt.Fprintf(&b, "%s %s", categoryPrefix, d.Category)
	if d.Merchant != "" {
		fmt.Fprintf(&b, "\n%s %s", merchantPrefix, d.Merchant)
	}
	if d.Reasoning != "" {
		fmt.Fprintf(&b, "\n\n%s %s", reasoningPrefix, d.Reasoning)
	}
	return b.String()
}

// multiMessage builds the confirmation for several saved drafts.
func (f *Formatter) multiMessage(drafts []ai.Draft) string {
	var total int64
	var b strings.Builder
	fmt.Fprintf(&b, "%s %d giao dịch:\n\n", savedPrefix, len(drafts))
	for i, d := range drafts {
		total += d.Amount
		fmt.Fprintf(&b, "%d. %s - %s (%s)\n", i+1, d.Description, f.Amount(d.Amount), d.Category)
	}
	fmt.Fprintf(&b, "\n%s %s", totalPrefix, f.Amount(total))
	return b.String()
}

// partialFailureNote reports drafts that could not be saved.
func partialFailureNote(failed int) string {
	return fmt.Sprintf("\n\n⚠️ Không lưu được %d giao dịch. Vui lòng thử lại.", failed)
}
