package service

import (
	"strings"

	"github.com/voltswap/voltswap/internal/domain"
)

// DefaultMaintenanceKeywords are the reason substrings that mark a completed
// transfer as a maintenance move. Overridable via MAINTENANCE_KEYWORDS.
var DefaultMaintenanceKeywords = []string{
	"maintenance",
	"repair",
	"service",
	"manufacturer_service",
	"mantenimiento",
}

// StatusPolicy derives a battery's post-transfer operational status from the
// transfer outcome and the free-text reason. Keyword containment on free text
// is a documented heuristic, which is why the list is configuration rather
// than code.
type StatusPolicy struct {
	keywords []string
}

func NewStatusPolicy(keywords []string) *StatusPolicy {
	if len(keywords) == 0 {
		keywords = DefaultMaintenanceKeywords
	}
	lowered := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			lowered = append(lowered, k)
		}
	}
	return &StatusPolicy{keywords: lowered}
}

// Resolve returns maintenance only when the transfer outcome is completed and
// the reason reads as maintenance work. Every other relocation carries the
// battery's current status over unchanged. Pure function.
func (p *StatusPolicy) Resolve(current domain.BatteryStatus, outcome domain.TransferStatus, reason string) domain.BatteryStatus {
	if outcome != domain.TransferCompleted {
		return current
	}
	reason = strings.ToLower(strings.TrimSpace(reason))
	for _, k := range p.keywords {
		if strings.Contains(reason, k) {
			return domain.BatteryMaintenance
		}
	}
	return current
}
