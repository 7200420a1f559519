package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	ds "github.com/starfederation/datastar-go/datastar"
)

// viewSig is the part of the client's signals that identifies which mounted view a request belongs to.
type viewSig struct {
	View string `json:"view"`
}

func newViewID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate view id: %w", err)
	}
	return id.String(), nil
}

// readViewID pulls the view id out of the datastar signals sent with the request.
func readViewID(r *http.Request) (string, error) {
	var sig viewSig
	if err := ds.ReadSignals(r, &sig); err != nil {
		return "", fmt.Errorf("read signals: %w", err)
	}
	if sig.View == "" {
		return "", fmt.Errorf("read signals: no view id")
	}
	return sig.View, nil
}

func viewSignals(viewID string) (string, error) {
	b, err := json.Marshal(viewSig{View: viewID})
	if err != nil {
		return "", fmt.Errorf("marshal signals: %w", err)
	}
	return string(b), nil
}
