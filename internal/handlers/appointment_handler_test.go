package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/salonat-app/salon-api/internal/httperr"
)

func TestWriteAppointmentErrorStatusCodes(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		code string
		want int
	}{
		{"time_conflict", http.StatusConflict},
		{"too_soon", http.StatusBadRequest},
		{"invalid_date_or_time", http.StatusBadRequest},
		{"service_not_found", http.StatusBadRequest},
		{"salon_not_found", http.StatusNotFound},
		{"salon_unavailable", http.StatusForbidden},
		{"appointment_not_found", http.StatusNotFound},
		{"invalid_state", http.StatusBadRequest},
		{"something_else", http.StatusInternalServerError},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		writeAppointmentError(c, httperr.ErrBusiness(tc.code))

		if w.Code != tc.want {
			t.Fatalf("%s: status = %d, want %d", tc.code, w.Code, tc.want)
		}
	}
}

func TestWriteAppointmentErrorExclusionViolation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	writeAppointmentError(c, &pgconn.PgError{Code: "23P01"})

	if w.Code != http.StatusConflict {
		t.Fatalf("exclusion violation: status = %d, want %d", w.Code, http.StatusConflict)
	}
}
