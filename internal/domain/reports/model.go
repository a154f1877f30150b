package reports

// Stats son los contadores del dashboard de admin.
type Stats struct {
	TotalPets           int
	TotalUsers          int
	PendingAppointments int // Scheduled con fecha >= ahora
}

// RecentPet es una fila del "últimas altas" del dashboard.
type RecentPet struct {
	PetID          string
	PetName        string
	Species        string
	OwnerFirstName string
	OwnerLastName  string
}

// DayCount agrupa altas por día (YYYY-MM-DD).
type DayCount struct {
	Date  string
	Total int
}

// KeyCount es un agrupado genérico (por especie, por status).
type KeyCount struct {
	Key   string
	Count int
}

// Overview agrupa los breakdowns del dashboard.
type Overview struct {
	UsersByDay           []DayCount
	PetsBySpecies        []KeyCount
	AppointmentsByStatus []KeyCount
}
