// This file contains the wiring of a single local node: the bbolt database,
// the execution service with the todo contract, and the transaction manager of
// the node owner.

package main

import (
	"encoding/binary"
	"os"

	"github.com/todoledger/todoledger/contracts/todo"
	"github.com/todoledger/todoledger/contracts/todo/controller"
	"github.com/todoledger/todoledger/core/access"
	"github.com/todoledger/todoledger/core/access/grant"
	"github.com/todoledger/todoledger/core/execution"
	"github.com/todoledger/todoledger/core/execution/native"
	"github.com/todoledger/todoledger/core/store"
	"github.com/todoledger/todoledger/core/store/kv"
	"github.com/todoledger/todoledger/core/txn"
	"github.com/todoledger/todoledger/core/txn/signed"
	"github.com/todoledger/todoledger/crypto/ed25519"
	"github.com/todoledger/todoledger/crypto/loader"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

var bucket = []byte("todoledger")

const noncePrefix = "nonce:"

// config is the configuration of the node, loaded from a YAML file.
type config struct {
	DBPath  string `yaml:"db_path"`
	KeyPath string `yaml:"key_path"`
}

// loadConfig reads the configuration file, or returns the default
// configuration if the file does not exist.
func loadConfig(path string) (config, error) {
	cfg := config{
		DBPath:  "todoledger.db",
		KeyPath: "private.key",
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}

	if err != nil {
		return cfg, xerrors.Errorf("while reading config: %v", err)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, xerrors.Errorf("while parsing config: %v", err)
	}

	return cfg, nil
}

// node is a local single-participant ledger. Every transaction is executed
// inside one database transaction, so a rejected transaction leaves no partial
// state behind.
type node struct {
	db     kv.DB
	exec   *native.Service
	signer ed25519.Signer
	mgr    txn.Manager
}

// newNode opens the database and the signer key of the owner, registers the
// todo contract and grants the owner the access to it.
func newNode(cfg config) (*node, error) {
	keyLoader := loader.NewFileLoader(cfg.KeyPath)

	data, err := keyLoader.LoadOrCreate(signerGenerator{})
	if err != nil {
		return nil, xerrors.Errorf("while loading signer: %v", err)
	}

	signer, err := ed25519.NewSignerFromBytes(data)
	if err != nil {
		return nil, xerrors.Errorf("while restoring signer: %v", err)
	}

	db, err := kv.New(cfg.DBPath)
	if err != nil {
		return nil, xerrors.Errorf("while opening db: %v", err)
	}

	exec := native.NewExecution()
	asrv := grant.NewService()
	ctrl := controller.NewController()

	err = db.Update(bucket, func(b kv.Bucket) error {
		_, err := ctrl.OnStart(exec, asrv, kv.NewSnapshot(b), signer.GetPublicKey())

		return err
	})
	if err != nil {
		db.Close()

		return nil, xerrors.Errorf("while starting contract: %v", err)
	}

	n := &node{
		db:     db,
		exec:   exec,
		signer: signer,
	}

	n.mgr = signed.NewManager(signer, nonceClient{db: db})

	return n, nil
}

func (n *node) close() error {
	return n.db.Close()
}

// submit executes a transaction of the node owner with the given arguments on
// the todo contract. A rejected transaction rolls back every write and is
// reported as an error carrying the abort reason.
func (n *node) submit(args ...txn.Arg) error {
	err := n.mgr.Sync()
	if err != nil {
		return xerrors.Errorf("failed to sync nonce: %v", err)
	}

	args = append(args, txn.Arg{
		Key:   native.ContractArg,
		Value: []byte(todo.ContractName),
	})

	tx, err := n.mgr.Make(args...)
	if err != nil {
		return xerrors.Errorf("failed to make tx: %v", err)
	}

	return n.db.Update(bucket, func(b kv.Bucket) error {
		snap := kv.NewSnapshot(b)

		res, err := n.exec.Execute(snap, execution.Step{Current: tx})
		if err != nil {
			return xerrors.Errorf("failed to execute tx: %v", err)
		}

		if !res.Accepted {
			return xerrors.Errorf("transaction rejected: %s", res.Message)
		}

		return setNonce(snap, tx.GetIdentity(), tx.GetNonce()+1)
	})
}

// nonceClient resolves the next nonce of an identity from the database.
//
// - implements signed.Client
type nonceClient struct {
	db kv.DB
}

// GetNonce implements signed.Client. It returns the nonce of the next
// transaction of the identity.
func (c nonceClient) GetNonce(ident access.Identity) (uint64, error) {
	key, err := nonceKey(ident)
	if err != nil {
		return 0, err
	}

	var nonce uint64

	err = c.db.View(bucket, func(b kv.Bucket) error {
		data := b.Get(key)
		if len(data) > 0 {
			nonce = binary.LittleEndian.Uint64(data)
		}

		return nil
	})
	if err != nil {
		return 0, xerrors.Errorf("while reading nonce: %v", err)
	}

	return nonce, nil
}

func setNonce(snap store.Snapshot, ident access.Identity, nonce uint64) error {
	key, err := nonceKey(ident)
	if err != nil {
		return err
	}

	buffer := make([]byte, 8)
	binary.LittleEndian.PutUint64(buffer, nonce)

	return snap.Set(key, buffer)
}

func nonceKey(ident access.Identity) ([]byte, error) {
	text, err := ident.MarshalText()
	if err != nil {
		return nil, xerrors.Errorf("while marshaling identity: %v", err)
	}

	return append([]byte(noncePrefix), text...), nil
}

// signerGenerator generates a new random signer key.
//
// - implements loader.Generator
type signerGenerator struct{}

// Generate implements loader.Generator. It returns the marshaled private key
// of a new signer.
func (signerGenerator) Generate() ([]byte, error) {
	return ed25519.NewSigner().MarshalBinary()
}
