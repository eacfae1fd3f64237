// Copyright (C) 2019-2025 Algorand, Inc.
// This file is part of go-algorand
//
// go-algorand is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-algorand is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-algorand.  If not, see <https://www.gnu.org/licenses/>.

// Package libgoal is the high level client: one algod endpoint, the signers
// of the accounts it manages and a factory for transaction composers, all
// configured from a config.Local.
package libgoal

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/algorand/go-deadlock"

	"github.com/algorand/go-algokit/composer"
	"github.com/algorand/go-algokit/config"
	algodclient "github.com/algorand/go-algokit/daemon/algod/api/client"
	"github.com/algorand/go-algokit/daemon/algod/api/model"
	"github.com/algorand/go-algokit/data/basics"
	"github.com/algorand/go-algokit/logging"
)

// Client holds everything needed to build, sign and submit transactions
// against one node.
type Client struct {
	cfg       config.Local
	consensus config.ConsensusParams
	algod     composer.Node
	log       logging.Logger

	mu      deadlock.Mutex
	signers composer.SignerMap

	suggestedParamsCache  model.TransactionParams
	suggestedParamsExpire time.Time
	suggestedParamsMaxAge time.Duration
}

// MakeClient creates a client talking to the algod endpoint named in cfg.
func MakeClient(cfg config.Local) (*Client, error) {
	u, err := url.Parse(cfg.AlgodAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid algod address %q: %w", cfg.AlgodAddress, err)
	}
	log := logging.NewLogger()
	if cfg.LogLevel != "" {
		lvl, err := logging.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, err
		}
		log.SetLevel(lvl)
	}
	algod := algodclient.MakeRestClient(*u, cfg.AlgodToken).WithTimeout(cfg.HTTPTimeout).WithLogger(log)
	return makeClientWithNode(cfg, algod, log), nil
}

// MakeClientFromDir loads config.json from dataDir (defaults when missing)
// and creates a client from it.
func MakeClientFromDir(dataDir string) (*Client, error) {
	cfg, err := config.LoadConfigFromDisk(dataDir)
	if err != nil {
		return nil, err
	}
	return MakeClient(cfg)
}

func makeClientWithNode(cfg config.Local, node composer.Node, log logging.Logger) *Client {
	return &Client{
		cfg:       cfg,
		consensus: config.Current(),
		algod:     node,
		log:       log,
		signers:   make(composer.SignerMap),
	}
}

// Config returns the settings the client was created with.
func (c *Client) Config() config.Local {
	return c.cfg
}

// AddSigner makes signer the default signer for transactions sent by addr.
func (c *Client) AddSigner(addr basics.Address, signer composer.TransactionSigner) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.signers[addr] = signer
}

// Signer implements composer.SignerGetter over the registered signers.
func (c *Client) Signer(addr basics.Address) (composer.TransactionSigner, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.signers[addr]
	return s, ok
}

// Status returns the node status.
func (c *Client) Status(ctx context.Context) (model.NodeStatus, error) {
	return c.algod.Status(ctx)
}

// SuggestedParams returns the suggested parameters for a new transaction,
// always asking the node.
func (c *Client) SuggestedParams(ctx context.Context) (model.TransactionParams, error) {
	return c.algod.SuggestedParams(ctx)
}

// SetSuggestedParamsCacheAge sets the maximum age of the cached
// SuggestedParams used by composers and transaction constructors. Zero
// disables the cache.
func (c *Client) SetSuggestedParamsCacheAge(maxAge time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.suggestedParamsMaxAge = maxAge
	c.suggestedParamsExpire = time.Time{}
}

func (c *Client) cachedSuggestedParams(ctx context.Context) (model.TransactionParams, error) {
	c.mu.Lock()
	if c.suggestedParamsMaxAge != 0 && time.Now().Before(c.suggestedParamsExpire) {
		params := c.suggestedParamsCache
		c.mu.Unlock()
		return params, nil
	}
	c.mu.Unlock()

	params, err := c.SuggestedParams(ctx)
	if err != nil {
		return model.TransactionParams{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.suggestedParamsMaxAge != 0 {
		c.suggestedParamsCache = params
		c.suggestedParamsExpire = time.Now().Add(c.suggestedParamsMaxAge)
	}
	return params, nil
}

// cachingNode serves suggested params from the client cache.
type cachingNode struct {
	composer.Node
	c *Client
}

func (n cachingNode) SuggestedParams(ctx context.Context) (model.TransactionParams, error) {
	return n.c.cachedSuggestedParams(ctx)
}

// NewComposer returns an empty composer using the client's node, signers and
// settings. opts are applied after the client settings.
func (c *Client) NewComposer(opts ...composer.Option) *composer.Composer {
	all := []composer.Option{
		composer.WithConfig(c.cfg),
		composer.WithConsensus(c.consensus),
		composer.WithLogger(c.log),
	}
	return composer.New(cachingNode{Node: c.algod, c: c}, c, append(all, opts...)...)
}

// SendGroup sends the composer's group, waiting at most the configured
// number of rounds for each transaction.
func (c *Client) SendGroup(ctx context.Context, comp *composer.Composer) (composer.SendResults, error) {
	return comp.Send(ctx, composer.SendParams{MaxRoundsToWaitForConfirmation: c.cfg.MaxRoundsToWaitForConfirmation})
}
