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

package crypto

import (
	"github.com/algorand/go-algokit/protocol"
)

// MultisigSubsig is a struct that holds a pair of public key and signatures
// signatures may be empty
type MultisigSubsig struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Key PublicKey `codec:"pk"` // all public keys that are possible signers for this address
	Sig Signature `codec:"s"`  // may be either empty or a signature
}

// MultisigSig is the structure that holds multiple Subsigs
type MultisigSig struct {
	_struct struct{} `codec:",omitempty,omitemptyarray"`

	Version   uint8            `codec:"v"`
	Threshold uint8            `codec:"thr"`
	Subsigs   []MultisigSubsig `codec:"subsig"`
}

const maxMultisig = 255

// MultisigPreimageFromPKs makes an empty MultisigSig for a given preimage.
func MultisigPreimageFromPKs(version, threshold uint8, pks []PublicKey) MultisigSig {
	out := MultisigSig{Version: version, Threshold: threshold, Subsigs: make([]MultisigSubsig, len(pks))}
	for i := range pks {
		out.Subsigs[i].Key = pks[i]
	}
	return out
}

// Blank returns true iff the msig is empty. We need this instead of just
// comparing with == MultisigSig{}, because Subsigs is a slice.
func (msig MultisigSig) Blank() bool {
	return msig.Version == 0 && msig.Threshold == 0 && msig.Subsigs == nil
}

// Preimage returns the version, threshold, and list of all public keys in a (partial) multisig address
func (msig MultisigSig) Preimage() (version, threshold uint8, pks []PublicKey) {
	pks = make([]PublicKey, len(msig.Subsigs))
	for i, subsig := range msig.Subsigs {
		pks[i] = subsig.Key
	}
	return msig.Version, msig.Threshold, pks
}

// Signatures returns the actual number of signatures included in the
// multisig. That is, the number of subsigs that are not blank.
func (msig MultisigSig) Signatures() int {
	sigs := 0
	for i := range msig.Subsigs {
		if !msig.Subsigs[i].Sig.Blank() {
			sigs++
		}
	}
	return sigs
}

// Address derives the multisig account address from the preimage.
func (msig MultisigSig) Address() (Digest, error) {
	version, threshold, pks := msig.Preimage()
	return MultisigAddrGen(version, threshold, pks)
}

// MultisigAddrGen identifes the exact group, version,
// and devices (Public keys) that it requires to sign
// Hash("MultisigAddr" || version uint8 || threshold uint8 || PK1 || PK2 || ...)
func MultisigAddrGen(version, threshold uint8, pk []PublicKey) (addr Digest, err error) {
	if version != 1 {
		err = errUnknownVersion
		return
	}
	if threshold == 0 || len(pk) == 0 || int(threshold) > len(pk) || len(pk) > maxMultisig {
		err = errInvalidThreshold
		return
	}

	buffer := append([]byte(protocol.MultisigAddr), version, threshold)
	for _, pki := range pk {
		buffer = append(buffer, pki[:]...)
	}
	return Hash(buffer), nil
}

// MultisigSign is for each device individually signs the digest
func MultisigSign(msg Hashable, addr Digest, version, threshold uint8, pk []PublicKey, sk SecretKey) (sig MultisigSig, err error) {
	addrnew, err := MultisigAddrGen(version, threshold, pk)
	if err != nil {
		return
	}
	if addr != addrnew {
		err = errInvalidAddress
		return
	}

	sig = MultisigPreimageFromPKs(version, threshold, pk)
	found := false
	for i := range sig.Subsigs {
		if sig.Subsigs[i].Key == sk.SignatureVerifier {
			sig.Subsigs[i].Sig = sk.Sign(msg)
			found = true
		}
	}
	if !found {
		return MultisigSig{}, errKeyNotExist
	}
	return
}

// MultisigMerge merges two Multisigs msig1 and msig2 into msigt
func MultisigMerge(msig1 MultisigSig, msig2 MultisigSig) (msigt MultisigSig, err error) {
	if msig1.Version != msig2.Version {
		err = errInvalidVersion
		return
	}
	if msig1.Threshold != msig2.Threshold || len(msig1.Subsigs) != len(msig2.Subsigs) {
		err = errInvalidThreshold
		return
	}
	for i := range msig1.Subsigs {
		if msig1.Subsigs[i].Key != msig2.Subsigs[i].Key {
			err = errKeysNotMatch
			return
		}
	}

	msigt = MultisigSig{Version: msig1.Version, Threshold: msig1.Threshold, Subsigs: make([]MultisigSubsig, len(msig1.Subsigs))}
	for i := range msigt.Subsigs {
		s1, s2 := msig1.Subsigs[i].Sig, msig2.Subsigs[i].Sig
		msigt.Subsigs[i].Key = msig1.Subsigs[i].Key
		switch {
		case s1.Blank():
			msigt.Subsigs[i].Sig = s2
		case s2.Blank() || s1 == s2:
			msigt.Subsigs[i].Sig = s1
		default:
			return MultisigSig{}, errInvalidDuplicates
		}
	}
	return
}

// MultisigAssemble merges every partial signature in unisig into one.
func MultisigAssemble(unisig []MultisigSig) (msig MultisigSig, err error) {
	if len(unisig) == 0 {
		err = errInvalidNumberOfSignature
		return
	}
	msig = unisig[0]
	for _, other := range unisig[1:] {
		msig, err = MultisigMerge(msig, other)
		if err != nil {
			return MultisigSig{}, err
		}
	}
	return
}

// MultisigVerify verifies an assembled MultisigSig
func MultisigVerify(msg Hashable, addr Digest, sig MultisigSig) error {
	if len(sig.Subsigs) == 0 {
		return errInvalidNumberOfSignature
	}
	addrnew, err := sig.Address()
	if err != nil {
		return err
	}
	if addr != addrnew {
		return errInvalidAddress
	}
	if sig.Signatures() < int(sig.Threshold) {
		return errInvalidNumberOfSignature
	}
	for _, subsig := range sig.Subsigs {
		if !subsig.Sig.Blank() && !subsig.Key.Verify(msg, subsig.Sig) {
			return errSubsigVerification
		}
	}
	return nil
}

// Equal compares two MultisigSig structs for equality
func (msig MultisigSig) Equal(other MultisigSig) bool {
	if msig.Version != other.Version || msig.Threshold != other.Threshold || len(msig.Subsigs) != len(other.Subsigs) {
		return false
	}
	for i := range msig.Subsigs {
		if msig.Subsigs[i] != other.Subsigs[i] {
			return false
		}
	}
	return true
}
