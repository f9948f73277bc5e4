package models

import "fmt"

// Family представляет семейство сущностей CRM (ресурс удаленного API).
// Каждое семейство синхронизируется независимо со своим checkpoint.
type Family string

// Поддерживаемые семейства сущностей
const (
	FamilyProjects Family = "projects"
	FamilyTasks    Family = "tasks"
	FamilyUsers    Family = "users"
	FamilyClients  Family = "clients"
	FamilyComments Family = "comments"
)

// AllFamilies возвращает все поддерживаемые семейства в фиксированном порядке.
// Порядок важен: родительские сущности синхронизируются раньше дочерних
// (projects раньше tasks, tasks раньше comments).
func AllFamilies() []Family {
	return []Family{
		FamilyProjects,
		FamilyUsers,
		FamilyClients,
		FamilyTasks,
		FamilyComments,
	}
}

// ParseFamily преобразует строку в Family.
// Возвращает ошибку для неизвестного семейства.
func ParseFamily(s string) (Family, error) {
	f := Family(s)
	for _, known := range AllFamilies() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown entity family: %q", s)
}

// String реализует fmt.Stringer
func (f Family) String() string {
	return string(f)
}
