package trade

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tilesgalleria/backoffice/internal/domain/inventory"
)

// Number prefixes per document kind
const (
	PrefixInvoice         = "INV"
	PrefixManualInvoice   = "MINV"
	PrefixQuotation       = "QUO"
	PrefixManualQuotation = "MQUO"
	PrefixPurchaseOrder   = "PO"
)

// PrefixFor returns the number prefix used by kind
func PrefixFor(kind inventory.DocumentKind) string {
	switch kind {
	case inventory.KindInvoice:
		return PrefixInvoice
	case inventory.KindManualInvoice:
		return PrefixManualInvoice
	case inventory.KindQuotation:
		return PrefixQuotation
	case inventory.KindManualQuotation:
		return PrefixManualQuotation
	case inventory.KindPurchaseOrder:
		return PrefixPurchaseOrder
	}
	return "DOC"
}

// FormatNumber renders PREFIX-NNNN
func FormatNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s-%04d", prefix, seq)
}

// ParseSequence extracts the numeric part of a PREFIX-NNNN number.
// It returns false unless everything after the prefix is a decimal digit.
func ParseSequence(prefix, number string) (int, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(number), prefix+"-")
	if !ok || rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextNumber returns the number that follows last. An empty or foreign last
// number starts the sequence at 1.
func NextNumber(prefix, last string) string {
	seq, ok := ParseSequence(prefix, last)
	if !ok {
		seq = 0
	}
	return FormatNumber(prefix, seq+1)
}

// HighestNumber returns the PREFIX-NNNN number with the largest sequence among
// candidates. Custom numbers that merely share the prefix are ignored.
func HighestNumber(prefix string, candidates []string) string {
	best, bestSeq := "", -1
	for _, n := range candidates {
		seq, ok := ParseSequence(prefix, n)
		if ok && seq > bestSeq {
			best, bestSeq = strings.TrimSpace(n), seq
		}
	}
	return best
}
