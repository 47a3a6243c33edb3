package attendance

type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
	StatusLeave   Status = "leave"
	StatusRemote  Status = "remote"
)

var AllStatuses = []Status{StatusPresent, StatusAbsent, StatusLate, StatusHalfDay, StatusLeave, StatusRemote}

func (s Status) IsValid() bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

const (
	LocaleKorean  = "ko"
	LocaleEnglish = "en"
)

// LabelTable holds the user-facing strings of one locale.
type LabelTable struct {
	Statuses   map[Status]string
	Unknown    string
	Unassigned string
}

var labelTables = map[string]LabelTable{
	LocaleKorean: {
		Statuses: map[Status]string{
			StatusPresent: "출근",
			StatusAbsent:  "결근",
			StatusLate:    "지각",
			StatusHalfDay: "반차",
			StatusLeave:   "휴가",
			StatusRemote:  "재택",
		},
		Unknown:    "알 수 없음",
		Unassigned: "미배정",
	},
	LocaleEnglish: {
		Statuses: map[Status]string{
			StatusPresent: "Present",
			StatusAbsent:  "Absent",
			StatusLate:    "Late",
			StatusHalfDay: "Half day",
			StatusLeave:   "Leave",
			StatusRemote:  "Remote",
		},
		Unknown:    "Unknown",
		Unassigned: "Unassigned",
	},
}

// Labels returns the label table for locale, falling back to Korean.
func Labels(locale string) LabelTable {
	if t, ok := labelTables[locale]; ok {
		return t
	}
	return labelTables[LocaleKorean]
}

func (t LabelTable) Status(s Status) string {
	if label, ok := t.Statuses[s]; ok {
		return label
	}
	return t.Unknown
}
