package reports

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/coopcredit_backend/config"
	"github.com/xuri/excelize/v2"
)

// ScoreSheetRow is one line of the officer-facing score sheet: every active
// member with their most recent credit score, if any.
type ScoreSheetRow struct {
	MemberId     int        `json:"member_id"`
	MemberNumber string     `json:"member_number"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	TotalScore   *int       `json:"total_score"`
	RiskCategory *string    `json:"risk_category"`
	Pathway      *string    `json:"pathway"`
	ModelVersion *string    `json:"model_version"`
	ComputedAt   *time.Time `json:"computed_at"`
}

func GetScoreSheetReport(ctx context.Context) ([]*ScoreSheetRow, error) {

	sql := `
SELECT
    members.id AS member_id,
    members.member_number,
    members.first_name,
    members.last_name,
    latest.total_score,
    latest.risk_category,
    latest.pathway,
    latest.model_version,
    latest.computed_at
FROM
    members
    LEFT JOIN (
        SELECT cs.member_id, cs.total_score, cs.risk_category, cs.pathway, cs.model_version, cs.computed_at
        FROM credit_scores cs
        JOIN (
            SELECT member_id, MAX(computed_at) AS computed_at
            FROM credit_scores
            GROUP BY member_id
        ) newest ON newest.member_id = cs.member_id AND newest.computed_at = cs.computed_at
    ) AS latest ON latest.member_id = members.id
WHERE
    members.status = 'ACTIVE'
ORDER BY
    members.id;
`

	var records []*ScoreSheetRow
	db := config.GetDB()
	if err := db.WithContext(ctx).Raw(sql).Scan(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

// BuildScoreSheetExcel renders the score sheet as a workbook. The caller owns
// the file and must Close it.
func BuildScoreSheetExcel(rows []*ScoreSheetRow) (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := "Sheet1"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, err
	}

	// Add headers
	f.SetCellValue(sheet, "A1", "MemberNo")
	f.SetCellValue(sheet, "B1", "FirstName")
	f.SetCellValue(sheet, "C1", "LastName")
	f.SetCellValue(sheet, "D1", "Score")
	f.SetCellValue(sheet, "E1", "RiskCategory")
	f.SetCellValue(sheet, "F1", "Pathway")
	f.SetCellValue(sheet, "G1", "ModelVersion")
	f.SetCellValue(sheet, "H1", "ComputedAt")

	// Add data
	for i, row := range rows {
		n := fmt.Sprint(i + 2)
		f.SetCellValue(sheet, "A"+n, row.MemberNumber)
		f.SetCellValue(sheet, "B"+n, row.FirstName)
		f.SetCellValue(sheet, "C"+n, row.LastName)
		if row.TotalScore == nil {
			f.SetCellValue(sheet, "D"+n, "unscored")
			continue
		}
		f.SetCellValue(sheet, "D"+n, *row.TotalScore)
		if row.RiskCategory != nil {
			f.SetCellValue(sheet, "E"+n, *row.RiskCategory)
		}
		if row.Pathway != nil {
			f.SetCellValue(sheet, "F"+n, *row.Pathway)
		}
		if row.ModelVersion != nil {
			f.SetCellValue(sheet, "G"+n, *row.ModelVersion)
		}
		if row.ComputedAt != nil {
			f.SetCellValue(sheet, "H"+n, row.ComputedAt.Format(time.RFC3339))
		}
	}

	return f, nil
}
