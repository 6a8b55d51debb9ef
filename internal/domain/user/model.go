package user

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleAdmin = "admin"
	RoleBHW   = "bhw"

	// MasterAdminUsername is the seeded account that can never be deleted.
	MasterAdminUsername = "admin"
)

// User maps to a document in the users collection. The username is the
// identity; there is no separate id in the document schema. The password is
// stored and compared as a literal, matching the documents already in the
// collection (see DESIGN.md).
type User struct {
	OID      primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username string             `bson:"username" json:"username"`
	Password string             `bson:"password" json:"-"`
	Role     string             `bson:"role" json:"role"`
	Name     string             `bson:"name" json:"name"`
}
