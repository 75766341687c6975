// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package preference

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/BlueWallet/BlueWallet-sub014/lib/codec"
)

// bbqrWalletsKey holds the CBOR array of wallet IDs that must use BBQr.
const bbqrWalletsKey = "USE_BBQR_WALLET_IDS"

// Preferences resolves per-wallet protocol choices against a Store.
type Preferences struct {
	store Store
}

// New returns Preferences backed by store.
func New(store Store) *Preferences {
	return &Preferences{store: store}
}

// Resolve picks the protocol for exporting on behalf of walletID.
//
// An explicit ProtocolBBQR or ProtocolURv2 wins. With ProtocolAuto the
// result is BBQr if walletID is on the stored list and URv2 otherwise;
// an empty walletID is never on the list.
func (p *Preferences) Resolve(ctx context.Context, walletID string, force Protocol) (Protocol, error) {
	switch force {
	case ProtocolBBQR, ProtocolURv2:
		return force, nil
	case ProtocolAuto:
	default:
		return ProtocolAuto, fmt.Errorf("resolving protocol: invalid %s", force)
	}

	if walletID == "" {
		return ProtocolURv2, nil
	}
	required, err := p.RequiresBBQR(ctx, walletID)
	if err != nil {
		return ProtocolAuto, err
	}
	if required {
		return ProtocolBBQR, nil
	}
	return ProtocolURv2, nil
}

// RequireBBQR adds walletID to the must-use-BBQr list. Adding a wallet
// that is already listed is a no-op.
func (p *Preferences) RequireBBQR(ctx context.Context, walletID string) error {
	if walletID == "" {
		return errors.New("requiring BBQr: empty wallet ID")
	}
	wallets, err := p.BBQRWallets(ctx)
	if err != nil {
		return err
	}
	if slices.Contains(wallets, walletID) {
		return nil
	}
	wallets = append(wallets, walletID)

	data, err := codec.Marshal(wallets)
	if err != nil {
		return fmt.Errorf("encoding BBQr wallet list: %w", err)
	}
	if err := p.store.Set(ctx, bbqrWalletsKey, data); err != nil {
		return fmt.Errorf("storing BBQr wallet list: %w", err)
	}
	return nil
}

// RequiresBBQR reports whether walletID is on the must-use-BBQr list.
func (p *Preferences) RequiresBBQR(ctx context.Context, walletID string) (bool, error) {
	wallets, err := p.BBQRWallets(ctx)
	if err != nil {
		return false, err
	}
	return slices.Contains(wallets, walletID), nil
}

// BBQRWallets returns the must-use-BBQr list in insertion order.
func (p *Preferences) BBQRWallets(ctx context.Context) ([]string, error) {
	data, err := p.store.Get(ctx, bbqrWalletsKey)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading BBQr wallet list: %w", err)
	}

	var wallets []string
	if err := codec.Unmarshal(data, &wallets); err != nil {
		return nil, fmt.Errorf("decoding BBQr wallet list: %w", err)
	}
	return wallets, nil
}
