package dataset

import "github.com/poiesic/profindex/core"

// Column names of the researcher dataset, in canonical order.
const (
	ColumnName          = "氏名"
	ColumnBirthDate     = "生年月日"
	ColumnEducation     = "学歴"
	ColumnResearchField = "研究分野"
	ColumnAchievements  = "研究実績"
	ColumnAwards        = "表彰実績"
	ColumnSelfIntro     = "自己紹介"
	ColumnAppeal        = "アピール"
)

// Columns lists every required column in canonical order.
var Columns = []string{
	ColumnName,
	ColumnBirthDate,
	ColumnEducation,
	ColumnResearchField,
	ColumnAchievements,
	ColumnAwards,
	ColumnSelfIntro,
	ColumnAppeal,
}

// fieldSetters assigns a cell value to the matching Record field.
var fieldSetters = map[string]func(r *core.Record, v string){
	ColumnName:          func(r *core.Record, v string) { r.Name = v },
	ColumnBirthDate:     func(r *core.Record, v string) { r.BirthDate = v },
	ColumnEducation:     func(r *core.Record, v string) { r.Education = v },
	ColumnResearchField: func(r *core.Record, v string) { r.ResearchField = v },
	ColumnAchievements:  func(r *core.Record, v string) { r.Achievements = v },
	ColumnAwards:        func(r *core.Record, v string) { r.Awards = v },
	ColumnSelfIntro:     func(r *core.Record, v string) { r.SelfIntro = v },
	ColumnAppeal:        func(r *core.Record, v string) { r.Appeal = v },
}
