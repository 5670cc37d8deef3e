package exporter

import (
	"fmt"

	"github.com/Pckk-solvers/Water-Info-Acquirer/pkg/contracts/domain"
)

// Localized column headers of the report workbook.
const (
	headerDate        = "日付"
	headerNonNull     = "非欠損本数"
	headerYear        = "年"
	headerPeakValue   = "最高値"
	headerPeakTime    = "最高時刻（水水DB基準）"
	headerItem        = "項目"
	headerMaxHourly   = "最大（1時間値）"
	headerMaxHourlyAt = "最大生起日時（水水DB基準）"
	headerMinHourly   = "最小（1時間値）"
	headerMinHourlyAt = "最小生起日時（水水DB基準）"
)

func columnLabel(c domain.Column) string {
	switch c {
	case domain.ColumnVarDen:
		return "可変分母"
	case domain.ColumnFixedDen:
		return "固定分母"
	case domain.ColumnDailyValue:
		return "日データ"
	default:
		return c.String()
	}
}

func levelLabel(l domain.FlowLevel) string {
	switch l {
	case domain.LevelHigh:
		return "豊水位"
	case domain.LevelNormal:
		return "平水位"
	case domain.LevelLow:
		return "低水位"
	case domain.LevelDrought:
		return "渇水位"
	default:
		return l.String()
	}
}

// valueHeader names the daily value column itself.
func valueHeader(c domain.Column) string {
	if c == domain.ColumnDailyValue {
		return columnLabel(c)
	}
	return fmt.Sprintf("日平均（%s）", columnLabel(c))
}

func rankHeader(c domain.Column) string {
	return fmt.Sprintf("ランク（%s）", columnLabel(c))
}

func levelHeader(l domain.FlowLevel, c domain.Column) string {
	return fmt.Sprintf("位況（%s,%s）", levelLabel(l), columnLabel(c))
}

func missingHeader(c domain.Column) string {
	return fmt.Sprintf("欠損数（%s）", columnLabel(c))
}

func meanHeader(c domain.Column) string {
	return fmt.Sprintf("平均（%s）", columnLabel(c))
}

func summaryLevelHeader(l domain.FlowLevel, c domain.Column) string {
	return fmt.Sprintf("位況%s（%s）", levelLabel(l), columnLabel(c))
}

func rankUsedHeader(l domain.FlowLevel, c domain.Column) string {
	return fmt.Sprintf("採用順位（%s,%s）", levelLabel(l), columnLabel(c))
}
