package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/cadence/pkg/domain"
)

// RenderBuckets builds the recent-sessions markdown: one section per bucket
// in order, open buckets marked, one table row per record.
func RenderBuckets(buckets []domain.Bucket) string {
	if len(buckets) == 0 {
		return "_No sessions this week._\n"
	}

	var sb strings.Builder
	sb.WriteString("# Recent Sessions\n\n")
	for _, b := range buckets {
		marker := ""
		if b.Open {
			marker = " (today)"
		}
		sb.WriteString(fmt.Sprintf("## %s%s\n\n", b.Key, marker))
		sb.WriteString(fmt.Sprintf("_%s_\n\n", b.TotalLabel))
		if len(b.Records) == 0 {
			continue
		}

		sb.WriteString("| Service | Start | Provider | Status |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, r := range b.Records {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				cell(r.ServiceName),
				cell(formatValue(r.SessionStart)),
				check(r.HasPrimaryProvider),
				status(r.Complete),
			))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", "\\|")
}

func check(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func status(complete bool) string {
	if complete {
		return "complete"
	}
	return "pending"
}
