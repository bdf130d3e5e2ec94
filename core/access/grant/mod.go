// Package grant implements an access service that stores the granted
// identities directly in the ledger storage.
//
// An access is stored as a {ID, RULE, IDENTITIES} triplet where the identities
// are the base64 encoded texts of the public keys allowed to use the
// credential.
package grant

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"

	"github.com/todoledger/todoledger/core/access"
	"github.com/todoledger/todoledger/core/store"
	"golang.org/x/xerrors"
)

const prefix = "access:"

// Service is an access service that resolves the accesses from the storage.
//
// - implements access.Service
type Service struct{}

// NewService creates a new access service.
func NewService() Service {
	return Service{}
}

// Match implements access.Service. It returns nil when every identity is
// registered for the credential, otherwise it returns an error.
func (srvc Service) Match(st store.Readable, creds access.Credential, idents ...access.Identity) error {
	granted, err := srvc.read(st, creds)
	if err != nil {
		return xerrors.Errorf("couldn't read access: %v", err)
	}

	if len(granted) == 0 {
		return xerrors.Errorf("access '%s' not found", creds.GetRule())
	}

	for _, ident := range idents {
		text, err := encode(ident)
		if err != nil {
			return xerrors.Errorf("couldn't encode identity: %v", err)
		}

		if _, ok := granted[text]; !ok {
			return xerrors.Errorf("identity '%s' is not granted for '%s'",
				text, creds.GetRule())
		}
	}

	return nil
}

// Grant implements access.Service. It registers the identities for the
// credential in the storage.
func (srvc Service) Grant(st store.Snapshot, creds access.Credential, idents ...access.Identity) error {
	granted, err := srvc.read(st, creds)
	if err != nil {
		return xerrors.Errorf("couldn't read access: %v", err)
	}

	for _, ident := range idents {
		text, err := encode(ident)
		if err != nil {
			return xerrors.Errorf("couldn't encode identity: %v", err)
		}

		granted[text] = struct{}{}
	}

	list := make([]string, 0, len(granted))
	for text := range granted {
		list = append(list, text)
	}

	data, err := json.Marshal(list)
	if err != nil {
		return xerrors.Errorf("couldn't serialize access: %v", err)
	}

	err = st.Set(makeKey(creds), data)
	if err != nil {
		return xerrors.Errorf("couldn't store access: %v", err)
	}

	return nil
}

func (srvc Service) read(st store.Readable, creds access.Credential) (map[string]struct{}, error) {
	data, err := st.Get(makeKey(creds))
	if err != nil {
		return nil, xerrors.Errorf("store failed: %v", err)
	}

	granted := map[string]struct{}{}

	if len(data) == 0 {
		return granted, nil
	}

	list := []string{}

	err = json.Unmarshal(data, &list)
	if err != nil {
		return nil, xerrors.Errorf("couldn't deserialize access: %v", err)
	}

	for _, text := range list {
		granted[text] = struct{}{}
	}

	return granted, nil
}

func encode(ident access.Identity) (string, error) {
	text, err := ident.MarshalText()
	if err != nil {
		return "", xerrors.Errorf("marshal failed: %v", err)
	}

	return base64.StdEncoding.EncodeToString(text), nil
}

func makeKey(creds access.Credential) []byte {
	return []byte(prefix + hex.EncodeToString(creds.GetID()) + ":" + creds.GetRule())
}
