package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strconv"

	"monadArcade/internal/chain"
)

const (
	actionVersion = "2.0"
	actionPath    = "/api/actions/donate-mon"
)

var actionPresets = []string{"0.01", "0.05", "0.1"}

// DonationTx is an unsigned native transfer to the donation wallet.
type DonationTx struct {
	To      string `json:"to"`
	Value   string `json:"value"`
	ChainID uint64 `json:"chainId"`
}

type donateRequest struct {
	Amount json.RawMessage `json:"amount"`
}

type actionLink struct {
	Type       string            `json:"type"`
	Label      string            `json:"label"`
	Href       string            `json:"href"`
	Parameters []actionParameter `json:"parameters,omitempty"`
}

type actionParameter struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type actionLinks struct {
	Actions []actionLink `json:"actions"`
}

type actionMetadata struct {
	Type        string      `json:"type"`
	Icon        string      `json:"icon"`
	Label       string      `json:"label"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Links       actionLinks `json:"links"`
}

type actionTransaction struct {
	Type        string `json:"type"`
	Transaction string `json:"transaction"`
	Message     string `json:"message"`
}

// parseDonation converts an ether amount into wei, rejecting zero and negatives.
func parseDonation(amount string) (*big.Int, error) {
	wei, err := chain.ParseEther(amount)
	if err != nil || wei.Sign() <= 0 {
		return nil, badRequest("enter a valid donation amount")
	}
	return wei, nil
}

// amountText accepts the amount as a JSON number or string.
func amountText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
		return ""
	}
	if f, err := strconv.ParseFloat(string(raw), 64); err == nil {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

func (s *Server) donationTx(wei *big.Int) DonationTx {
	return DonationTx{
		To:      s.cfg.Donation.Hex(),
		Value:   wei.String(),
		ChainID: s.cfg.ChainID,
	}
}

func (s *Server) handleDonate(w http.ResponseWriter, r *http.Request) {
	var req donateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeFailure(w, r, badRequest("invalid request body"), "")
		return
	}
	wei, err := parseDonation(amountText(req.Amount))
	if err != nil {
		s.writeFailure(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]DonationTx{"transaction": s.donationTx(wei)})
}

func (s *Server) setActionHeaders(w http.ResponseWriter) {
	h := w.Header()
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type, x-blockchain-ids, x-action-version")
	h.Set("Content-Type", "application/json")
	h.Set("x-blockchain-ids", fmt.Sprintf("eip155:%d", s.cfg.ChainID))
	h.Set("x-action-version", actionVersion)
}

func (s *Server) handleActionOptions(w http.ResponseWriter, r *http.Request) {
	s.setActionHeaders(w)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleActionMetadata(w http.ResponseWriter, r *http.Request) {
	s.setActionHeaders(w)

	icon := url.URL{Scheme: "http", Host: r.Host, Path: "/donate-mon.png"}
	if r.TLS != nil {
		icon.Scheme = "https"
	}

	meta := actionMetadata{
		Type:        "action",
		Icon:        icon.String(),
		Label:       "1 MON",
		Title:       "Donate MON",
		Description: "Donate MON on the Monad testnet. Pick a preset amount or enter your own.",
	}
	for _, amount := range actionPresets {
		meta.Links.Actions = append(meta.Links.Actions, actionLink{
			Type:  "transaction",
			Label: amount + " MON",
			Href:  actionPath + "?amount=" + amount,
		})
	}
	meta.Links.Actions = append(meta.Links.Actions, actionLink{
		Type:  "transaction",
		Label: "Donate",
		Href:  actionPath + "?amount={amount}",
		Parameters: []actionParameter{
			{Name: "amount", Label: "Enter a donation amount (MON)", Type: "number"},
		},
	})

	writeJSON(w, http.StatusOK, meta)
}

func (s *Server) handleActionTransaction(w http.ResponseWriter, r *http.Request) {
	s.setActionHeaders(w)

	amount := r.URL.Query().Get("amount")
	if amount == "" {
		s.writeFailure(w, r, badRequest("amount is required"), "")
		return
	}
	wei, err := parseDonation(amount)
	if err != nil {
		s.writeFailure(w, r, err, "")
		return
	}

	serialized, err := json.Marshal(s.donationTx(wei))
	if err != nil {
		s.writeFailure(w, r, err, "internal server error")
		return
	}
	writeJSON(w, http.StatusOK, actionTransaction{
		Type:        "transaction",
		Transaction: string(serialized),
		Message:     "MON Donate",
	})
}
