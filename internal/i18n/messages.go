package i18n

var messagesEN = map[Code]string{
	ErrMissingField:       "Please fill in all required fields",
	ErrEmailTooLong:       "Email is too long",
	ErrNameTooLong:        "Name is too long",
	ErrDescriptionTooLong: "Description is too long",
	ErrPhoneTooLong:       "Phone number is too long",
	ErrInvalidEmail:       "Email address is not valid",
	ErrInvalidPhone:       "Phone number is not valid",
	ErrPasswordTooShort:   "Password must be at least 8 characters long",
	ErrPasswordMismatch:   "Passwords do not match",
	ErrWrongPassword:      "Current password is incorrect",
	ErrEmailTaken:         "A user with this email already exists",
	ErrInvalidCredentials: "Incorrect email or password",
	ErrBlocked:            "This account has been blocked",
	ErrAccessDenied:       "You do not have access to this resource",
	ErrNotAuthenticated:   "Please log in",
	ErrInvalidPriority:    "Priority is not valid",
	ErrInvalidDueDate:     "Due date is not valid",
	ErrInternal:           "Something went wrong, please try again later",
	ErrNotFound:           "The requested resource was not found",
	ErrInvalidID:          "Identifier is not valid",
	ErrAlreadyExists:      "This record already exists",
	ErrListOwner:          "A task list must belong to exactly one user or team",
	ErrLastManager:        "The team must keep at least one manager",
	ErrNotParticipant:     "The user is not a participant of this team",
	ErrTaskCompleted:      "Completed tasks cannot be changed",
	ErrTooManyRequests:    "Too many attempts, please wait and try again",
	ErrSelfTarget:         "You cannot perform this action on yourself",
	ErrNotTeamTask:        "Responsible persons can only be assigned to team tasks",

	SucLoggedIn:           "Logged in",
	SucRegistered:         "Registration successful",
	SucProfileUpdated:     "Profile updated",
	SucUserBlocked:        "User blocked",
	SucUserUnblocked:      "User unblocked",
	SucUserDeleted:        "User deleted",
	SucCompanyCreated:     "Company created",
	SucCompanyUpdated:     "Company updated",
	SucCompanyDeleted:     "Company deleted",
	SucManagerAdded:       "Manager added",
	SucManagerRemoved:     "Manager removed",
	SucTeamCreated:        "Team created",
	SucTeamUpdated:        "Team updated",
	SucTeamDeleted:        "Team deleted",
	SucParticipantAdded:   "Participant added",
	SucTaskCreated:        "Task created",
	SucTaskUpdated:        "Task updated",
	SucTaskDeleted:        "Task deleted",
	SucParticipantRemoved: "Participant removed",
	SucRoleChanged:        "Role changed",
	SucStatusAdvanced:     "Task status updated",
	SucPersonAssigned:     "Responsible person assigned",
	SucPersonUnassigned:   "Responsible person removed",
	SucLoggedOut:          "Logged out",
	SucListCreated:        "Task list created",
	SucTokenRefreshed:     "Session refreshed",
}

var messagesLV = map[Code]string{
	ErrMissingField:       "Lūdzu aizpildiet visus obligātos laukus",
	ErrEmailTooLong:       "E-pasts ir pārāk garš",
	ErrNameTooLong:        "Vārds ir pārāk garš",
	ErrDescriptionTooLong: "Apraksts ir pārāk garš",
	ErrPhoneTooLong:       "Tālruņa numurs ir pārāk garš",
	ErrInvalidEmail:       "E-pasta adrese nav derīga",
	ErrInvalidPhone:       "Tālruņa numurs nav derīgs",
	ErrPasswordTooShort:   "Parolei jābūt vismaz 8 simbolus garai",
	ErrPasswordMismatch:   "Paroles nesakrīt",
	ErrWrongPassword:      "Pašreizējā parole nav pareiza",
	ErrEmailTaken:         "Lietotājs ar šādu e-pastu jau eksistē",
	ErrInvalidCredentials: "Nepareizs e-pasts vai parole",
	ErrBlocked:            "Šis konts ir bloķēts",
	ErrAccessDenied:       "Jums nav piekļuves šim resursam",
	ErrNotAuthenticated:   "Lūdzu pieslēdzieties",
	ErrInvalidPriority:    "Prioritāte nav derīga",
	ErrInvalidDueDate:     "Izpildes termiņš nav derīgs",
	ErrInternal:           "Radās kļūda, lūdzu mēģiniet vēlāk",
	ErrNotFound:           "Pieprasītais resurss netika atrasts",
	ErrInvalidID:          "Identifikators nav derīgs",
	ErrAlreadyExists:      "Šāds ieraksts jau eksistē",
	ErrListOwner:          "Uzdevumu sarakstam jāpieder tieši vienam lietotājam vai komandai",
	ErrLastManager:        "Komandai jāpaliek vismaz vienam vadītājam",
	ErrNotParticipant:     "Lietotājs nav šīs komandas dalībnieks",
	ErrTaskCompleted:      "Pabeigtus uzdevumus nevar mainīt",
	ErrTooManyRequests:    "Pārāk daudz mēģinājumu, lūdzu uzgaidiet",
	ErrSelfTarget:         "Šo darbību nevar veikt ar sevi",
	ErrNotTeamTask:        "Atbildīgās personas var piešķirt tikai komandas uzdevumiem",

	SucLoggedIn:           "Pieslēgšanās veiksmīga",
	SucRegistered:         "Reģistrācija veiksmīga",
	SucProfileUpdated:     "Profils atjaunināts",
	SucUserBlocked:        "Lietotājs bloķēts",
	SucUserUnblocked:      "Lietotājs atbloķēts",
	SucUserDeleted:        "Lietotājs dzēsts",
	SucCompanyCreated:     "Uzņēmums izveidots",
	SucCompanyUpdated:     "Uzņēmums atjaunināts",
	SucCompanyDeleted:     "Uzņēmums dzēsts",
	SucManagerAdded:       "Vadītājs pievienots",
	SucManagerRemoved:     "Vadītājs noņemts",
	SucTeamCreated:        "Komanda izveidota",
	SucTeamUpdated:        "Komanda atjaunināta",
	SucTeamDeleted:        "Komanda dzēsta",
	SucParticipantAdded:   "Dalībnieks pievienots",
	SucTaskCreated:        "Uzdevums izveidots",
	SucTaskUpdated:        "Uzdevums atjaunināts",
	SucTaskDeleted:        "Uzdevums dzēsts",
	SucParticipantRemoved: "Dalībnieks noņemts",
	SucRoleChanged:        "Loma mainīta",
	SucStatusAdvanced:     "Uzdevuma statuss atjaunināts",
	SucPersonAssigned:     "Atbildīgā persona piešķirta",
	SucPersonUnassigned:   "Atbildīgā persona noņemta",
	SucLoggedOut:          "Atslēgšanās veiksmīga",
	SucListCreated:        "Uzdevumu saraksts izveidots",
	SucTokenRefreshed:     "Sesija atjaunota",
}
