package authstate_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ppimu/project-monitoring/internal/authstate"
	"github.com/ppimu/project-monitoring/internal/profile"
	"github.com/ppimu/project-monitoring/internal/session"
)

var _ = Describe("GetCurrentUser", func() {
	var handler *authstate.Handler

	BeforeEach(func() {
		handler = authstate.NewHandler()
	})

	get := func(state authstate.State) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req = req.WithContext(authstate.ContextWithState(req.Context(), state))
		w := httptest.NewRecorder()
		handler.GetCurrentUser(w, req)
		return w
	}

	It("rejects a request without a session", func() {
		w := get(authstate.State{})
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("returns the resolved profile and MDA name", func() {
		role := profile.RoleApprover
		mdaID := "mda-7"
		w := get(authstate.State{
			Session: &session.Session{UserID: "user-1", Email: "approver@ppimu.gov.ng"},
			Profile: &profile.Profile{ID: "user-1", FullName: "Ngozi Okeke", Role: &role, MDAID: &mdaID},
			MDAName: "Ministry of Works",
		})

		Expect(w.Code).To(Equal(http.StatusOK))

		var resp authstate.CurrentUserResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.UserID).To(Equal("user-1"))
		Expect(resp.Email).To(Equal("approver@ppimu.gov.ng"))
		Expect(resp.Profile.FullName).To(Equal("Ngozi Okeke"))
		Expect(resp.MDAName).To(Equal("Ministry of Works"))
	})

	It("returns a null profile for a caller whose resolution failed", func() {
		w := get(authstate.State{
			Session: &session.Session{UserID: "user-1", Email: "engineer@ppimu.gov.ng"},
		})

		Expect(w.Code).To(Equal(http.StatusOK))

		var resp authstate.CurrentUserResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Profile).To(BeNil())
		Expect(resp.MDAName).To(BeEmpty())
	})
})
