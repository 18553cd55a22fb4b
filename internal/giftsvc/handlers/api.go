package handlers

import (
	"net/http"

	"github.com/avvvet/giftcard-services/internal/giftsvc/errs"
)

type detectRequest struct {
	Code string `json:"code"`
}

type checkBalanceRequest struct {
	CardCode string `json:"cardCode"`
	CardType string `json:"cardType"`
	CardName string `json:"cardName"`
}

type checkBalanceResponse struct {
	Balance  float64 `json:"balance"`
	CardType string  `json:"cardType"`
	CardName string  `json:"cardName"`
	Message  string  `json:"message"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type adminCheckResponse struct {
	AdminExists bool `json:"adminExists"`
}

type healthResponse struct {
	Status  string `json:"status"`
	Records int64  `json:"records"`
	Version string `json:"version"`
}

const apiVersion = "2.0"

func (h *Handler) DetectCardType(w http.ResponseWriter, r *http.Request) {
	var req detectRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err, errInternal)
		return
	}

	detected, err := h.balances.DetectType(req.Code)
	if err != nil {
		h.fail(w, r, err, errInternal)
		return
	}

	h.CreateResponse(w, http.StatusOK, map[string]string{"detectedType": detected})
}

func (h *Handler) CheckBalance(w http.ResponseWriter, r *http.Request) {
	var req checkBalanceRequest
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err, errInternal)
		return
	}

	res, err := h.balances.CheckBalance(r.Context(), req.CardCode, req.CardType, req.CardName)
	if err != nil {
		h.fail(w, r, err, errInternal)
		return
	}

	h.CreateResponse(w, http.StatusOK, checkBalanceResponse{
		Balance:  res.Balance.InexactFloat64(),
		CardType: res.CardType,
		CardName: res.CardName,
		Message:  "Real-time balance check completed successfully",
	})
}

// AdminCheck reports whether an admin account exists.
func (h *Handler) AdminCheck(w http.ResponseWriter, r *http.Request) {
	h.adminCheck(w, r, errInternal)
}

func (h *Handler) adminCheck(w http.ResponseWriter, r *http.Request, fallback *errs.HTTPError) {
	exists, err := h.admins.Exists(r.Context())
	if err != nil {
		h.fail(w, r, err, fallback)
		return
	}
	h.CreateResponse(w, http.StatusOK, adminCheckResponse{AdminExists: exists})
}

func (h *Handler) AdminRegister(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err, errInternal)
		return
	}

	if err := h.admins.Register(r.Context(), req.Email, req.Password); err != nil {
		h.fail(w, r, err, errInternal)
		return
	}

	h.CreateResponse(w, http.StatusOK, MessageResponse{Message: "Admin account created successfully"})
}

func (h *Handler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeBody(r, &req); err != nil {
		h.fail(w, r, err, errInternal)
		return
	}

	tok, err := h.admins.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(w, r, err, errInternal)
		return
	}

	h.CreateResponse(w, http.StatusOK, loginResponse{Message: "Login successful", Token: tok})
}

// AdminLogout only acknowledges. Tokens are stateless and stay valid
// until they expire.
func (h *Handler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, http.StatusOK, MessageResponse{Message: "Logout successful"})
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	n, err := h.records.Count(r.Context())
	if err != nil {
		h.fail(w, r, err, errInternal)
		return
	}

	h.CreateResponse(w, http.StatusOK, healthResponse{Status: "OK", Records: n, Version: apiVersion})
}
