package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"cleanslate/internal/grades"
	"cleanslate/internal/grades/handler/mocks"
	id "cleanslate/pkg/domain"
	dErrors "cleanslate/pkg/domain-errors"
	"cleanslate/pkg/requestcontext"
	"cleanslate/pkg/testutil"
)

func newTestRouter(t *testing.T) (*mocks.MockService, chi.Router) {
	t.Helper()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	h := New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return svc, r
}

func TestHandleSuggestGrade(t *testing.T) {
	svc, r := newTestRouter(t)

	svc.EXPECT().
		SuggestGrade(gomock.Any(), grades.ChargeRecord{Offense: "Theft", Section: "3921", Subsection: "a"}).
		Return(map[string]float64{"M1": 0.75, "M2": 0.25}, nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/grades/suggest/", map[string]string{
		"offense":    "Theft",
		"section":    "3921",
		"subsection": "a",
	})
	rr := testutil.DoRequest(r, req)

	testutil.AssertStatus(t, rr, http.StatusOK)
	resp := testutil.UnmarshalResponse[SuggestGradeResponse](t, rr)
	assert.InDelta(t, 0.75, resp.Probabilities["M1"], 1e-9)
}

func TestHandleSuggestGradeRejectsEmptyCharge(t *testing.T) {
	_, r := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/grades/suggest/", map[string]string{"title": "18"})
	rr := testutil.DoRequest(r, req)

	testutil.AssertStatus(t, rr, http.StatusBadRequest)
	testutil.AssertErrorCode(t, rr, string(dErrors.CodeValidation))
}

func TestHandleAddChargeRecord(t *testing.T) {
	svc, r := newTestRouter(t)

	svc.EXPECT().
		AddChargeRecord(gomock.Any(), gomock.Any()).
		Return(grades.ChargeRecord{ID: 7, Offense: "Theft", Grade: "M1", Weight: 1}, nil)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/grades/", map[string]any{
		"offense": "Theft",
		"grade":   "M1",
	})
	req = req.WithContext(requestcontext.WithUserID(req.Context(), id.NewUserID()))
	rr := testutil.DoRequest(r, req)

	testutil.AssertStatus(t, rr, http.StatusCreated)
	record := testutil.UnmarshalResponse[grades.ChargeRecord](t, rr)
	require.EqualValues(t, 7, record.ID)
}

func TestHandleAddChargeRecordRequiresAuth(t *testing.T) {
	_, r := newTestRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/grades/", map[string]any{
		"offense": "Theft",
		"grade":   "M1",
	})
	rr := testutil.DoRequest(r, req)

	testutil.AssertStatus(t, rr, http.StatusUnauthorized)
}
