package domain

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Status - состояние задачи. Порядковые значения хранятся в БД и не меняются.
type Status int

const (
	StatusToDo Status = iota
	StatusInProgress
	StatusDone
)

var statusNames = [...]string{
	StatusToDo:       "ToDo",
	StatusInProgress: "InProgress",
	StatusDone:       "Done",
}

func (s Status) String() string {
	if s.Valid() {
		return statusNames[s]
	}
	return "Status(" + strconv.Itoa(int(s)) + ")"
}

// Valid проверяет, что значение входит в перечисление
func (s Status) Valid() bool {
	return s >= StatusToDo && s <= StatusDone
}

// ParseStatus разбирает статус по имени (без учёта регистра) или по порядковому номеру
func ParseStatus(raw string) (Status, error) {
	raw = strings.TrimSpace(raw)
	for i, name := range statusNames {
		if strings.EqualFold(raw, name) {
			return Status(i), nil
		}
	}
	if n, err := strconv.Atoi(raw); err == nil && Status(n).Valid() {
		return Status(n), nil
	}
	return 0, ErrInvalidStatus
}

func (s Status) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return nil, ErrInvalidStatus
	}
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		parsed, err := ParseStatus(name)
		if err != nil {
			return err
		}
		*s = parsed
		return nil
	}

	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return ErrInvalidStatus
	}
	if !Status(n).Valid() {
		return ErrInvalidStatus
	}
	*s = Status(n)
	return nil
}
