package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestAccessContextPermissions(t *testing.T) {
	full := AccessContext{UserID: 1, RoleName: RoleGymAdmin, GymID: 4, PermissionType: "full"}
	readonly := AccessContext{UserID: 2, RoleName: RoleMember, GymID: 4, PermissionType: "readonly"}
	none := AccessContext{UserID: 3, RoleName: RoleMember, GymID: 4}

	if !full.CanWrite() || !full.CanRead() {
		t.Error("full permission should allow read and write")
	}
	if readonly.CanWrite() {
		t.Error("readonly permission should not allow write")
	}
	if !readonly.CanRead() {
		t.Error("readonly permission should allow read")
	}
	if none.CanRead() || none.CanWrite() {
		t.Error("empty permission should allow nothing")
	}
}

func TestCanAccessGym(t *testing.T) {
	admin := AccessContext{UserID: 1, RoleName: RoleSuperAdmin, GymID: 1, PermissionType: "full"}
	member := AccessContext{UserID: 2, RoleName: RoleMember, GymID: 4, PermissionType: "readonly"}

	if !admin.CanAccessGym(99) {
		t.Error("superadmin should reach any gym")
	}
	if !member.CanAccessGym(4) {
		t.Error("member should reach own gym")
	}
	if member.CanAccessGym(5) {
		t.Error("member should not reach another gym")
	}
}

func TestExtractGymIDFromHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mkCtx := func(header string) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest("GET", "/", nil)
		if header != "" {
			c.Request.Header.Set("X-Gym-ID", header)
		}
		return c
	}

	if got := ExtractGymIDFromHeader(mkCtx("4")); got == nil || *got != 4 {
		t.Errorf("X-Gym-ID 4 parsed as %v", got)
	}
	if got := ExtractGymIDFromHeader(mkCtx("")); got != nil {
		t.Errorf("missing header parsed as %v", *got)
	}
	if got := ExtractGymIDFromHeader(mkCtx("not-a-number")); got != nil {
		t.Errorf("garbage header parsed as %v", *got)
	}
}
