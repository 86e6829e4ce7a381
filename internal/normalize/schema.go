package normalize

// SystemFields names the properties of the systems database.
type SystemFields struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Norm   string `json:"norm"`
	Status string `json:"status"`
}

// AchievementFields names the properties of the achievements database.
type AchievementFields struct {
	Name         string `json:"name"`
	Category     string `json:"category"`
	Level        string `json:"level"`
	Description  string `json:"description"`
	Emoji        string `json:"emoji"`
	RequiredDays string `json:"required_days"`
	TimesEarned  string `json:"times_earned"`
	Status       string `json:"status"`
	FirstEarned  string `json:"first_earned"`
	LastEarned   string `json:"last_earned"`

	// UnlockedMarker and InProgressMarker are substrings of the status label.
	UnlockedMarker   string `json:"unlocked_marker"`
	InProgressMarker string `json:"in_progress_marker"`
}

// TrackerFields names the properties of the daily tracker database.
type TrackerFields struct {
	Date             string `json:"date"`
	DeepWorkDone     string `json:"deep_work_done"`
	CleanEatingScore string `json:"clean_eating_score"`
	BedtimeCompliant string `json:"bedtime_compliant"`
	MorningMovement  string `json:"morning_movement"`
}

// Schema maps dashboard fields onto workspace property names. The names are
// operator-edited in Notion, so they live in data rather than in code.
type Schema struct {
	Systems      SystemFields      `json:"systems"`
	Achievements AchievementFields `json:"achievements"`
	Tracker      TrackerFields     `json:"tracker"`
}

// DefaultSchema returns the property names of the reference workspace.
func DefaultSchema() Schema {
	return Schema{
		Systems: SystemFields{
			Name:   "Система",
			Value:  "Показатель",
			Norm:   "Норма",
			Status: "Status",
		},
		Achievements: AchievementFields{
			Name:             "Название",
			Category:         "Категория",
			Level:            "Уровень",
			Description:      "Описание",
			Emoji:            "Эмодзи",
			RequiredDays:     "Требование (дни)",
			TimesEarned:      "Количество раз",
			Status:           "Статус",
			FirstEarned:      "Первое получение",
			LastEarned:       "Последнее получение",
			UnlockedMarker:   "Получено",
			InProgressMarker: "В процессе",
		},
		Tracker: TrackerFields{
			Date:             "Дата",
			DeepWorkDone:     "Deep Work Done",
			CleanEatingScore: "Nutrition Quality",
			BedtimeCompliant: "Bedtime Compliant",
			MorningMovement:  "Morning Movement",
		},
	}
}
