package identity

import "encoding/json"

// Role is the closed set of account roles. The backend has used several
// string tags ("CLIENTE", "cliente", "ADMINISTRADOR", "ADMIN", "admin") and
// a numeric code with admin observed as both 0 and 1 across revisions; the
// parse functions below resolve all of that once, at the normalization
// boundary. The canonical numeric code is admin=0, customer=1.
type Role int

const (
	RoleCustomer Role = iota
	RoleAdministrator
)

const (
	adminCode    = 0
	customerCode = 1
)

func ParseRole(tag string) Role {
	switch tag {
	case "ADMINISTRADOR", "ADMIN", "admin", "administrador":
		return RoleAdministrator
	default:
		return RoleCustomer
	}
}

func RoleFromCode(code int) Role {
	if code == adminCode {
		return RoleAdministrator
	}
	return RoleCustomer
}

func (r Role) String() string {
	if r == RoleAdministrator {
		return "ADMINISTRADOR"
	}
	return "CLIENTE"
}

func (r Role) Code() int {
	if r == RoleAdministrator {
		return adminCode
	}
	return customerCode
}

// User is the canonical authenticated identity. Its JSON form keeps the
// historical "rol"/"rolId" pair so sessions persisted by older clients still
// load; in memory only the Role enum exists.
type User struct {
	ID        int
	Email     string
	FirstName string
	LastName  string
	Role      Role
}

type userJSON struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	RoleTag   string `json:"rol"`
	RoleCode  *int   `json:"rolId,omitempty"`
}

func (u User) MarshalJSON() ([]byte, error) {
	code := u.Role.Code()
	return json.Marshal(userJSON{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		RoleTag:   u.Role.String(),
		RoleCode:  &code,
	})
}

func (u *User) UnmarshalJSON(data []byte) error {
	var raw userJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	u.ID = raw.ID
	u.Email = raw.Email
	u.FirstName = raw.FirstName
	u.LastName = raw.LastName
	switch {
	case raw.RoleTag != "":
		u.Role = ParseRole(raw.RoleTag)
	case raw.RoleCode != nil:
		u.Role = RoleFromCode(*raw.RoleCode)
	default:
		u.Role = RoleCustomer
	}
	return nil
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdministrator
}
