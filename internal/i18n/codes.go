package i18n

// Code is a symbolic message key. Handlers and services only deal in codes;
// the catalog renders them for the negotiated locale.
type Code string

const (
	ErrMissingField       Code = "ERR_01"
	ErrEmailTooLong       Code = "ERR_02"
	ErrNameTooLong        Code = "ERR_03"
	ErrDescriptionTooLong Code = "ERR_04"
	ErrPhoneTooLong       Code = "ERR_05"
	ErrInvalidEmail       Code = "ERR_06"
	ErrInvalidPhone       Code = "ERR_07"
	ErrPasswordTooShort   Code = "ERR_08"
	ErrPasswordMismatch   Code = "ERR_09"
	ErrWrongPassword      Code = "ERR_10"
	ErrEmailTaken         Code = "ERR_11"
	ErrInvalidCredentials Code = "ERR_12"
	ErrBlocked            Code = "ERR_13"
	ErrAccessDenied       Code = "ERR_14"
	ErrNotAuthenticated   Code = "ERR_15"
	ErrInvalidPriority    Code = "ERR_16"
	ErrInvalidDueDate     Code = "ERR_17"
	ErrInternal           Code = "ERR_18"
	ErrNotFound           Code = "ERR_19"
	ErrInvalidID          Code = "ERR_20"
	ErrAlreadyExists      Code = "ERR_21"
	ErrListOwner          Code = "ERR_22"
	ErrLastManager        Code = "ERR_23"
	ErrNotParticipant     Code = "ERR_24"
	ErrTaskCompleted      Code = "ERR_25"
	ErrTooManyRequests    Code = "ERR_26"
	ErrSelfTarget         Code = "ERR_27"
	ErrNotTeamTask        Code = "ERR_28"

	SucLoggedIn           Code = "SUC_01"
	SucRegistered         Code = "SUC_02"
	SucProfileUpdated     Code = "SUC_03"
	SucUserBlocked        Code = "SUC_04"
	SucUserUnblocked      Code = "SUC_05"
	SucUserDeleted        Code = "SUC_06"
	SucCompanyCreated     Code = "SUC_07"
	SucCompanyUpdated     Code = "SUC_08"
	SucCompanyDeleted     Code = "SUC_09"
	SucManagerAdded       Code = "SUC_10"
	SucManagerRemoved     Code = "SUC_11"
	SucTeamCreated        Code = "SUC_12"
	SucTeamUpdated        Code = "SUC_13"
	SucTeamDeleted        Code = "SUC_14"
	SucParticipantAdded   Code = "SUC_15"
	SucTaskCreated        Code = "SUC_16"
	SucTaskUpdated        Code = "SUC_17"
	SucTaskDeleted        Code = "SUC_18"
	SucParticipantRemoved Code = "SUC_19"
	SucRoleChanged        Code = "SUC_20"
	SucStatusAdvanced     Code = "SUC_21"
	SucPersonAssigned     Code = "SUC_22"
	SucPersonUnassigned   Code = "SUC_23"
	SucLoggedOut          Code = "SUC_24"
	SucListCreated        Code = "SUC_25"
	SucTokenRefreshed     Code = "SUC_26"
)

func (c Code) String() string {
	return string(c)
}
