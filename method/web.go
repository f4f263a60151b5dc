package method

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/findy-network/credat/core"
	"github.com/golang/glog"
	"github.com/hyperledger/aries-framework-go/component/models/did"
	"github.com/lainio/err2"
	"github.com/lainio/err2/try"
)

const (
	wellKnownPath = ".well-known"
	docFile       = "did.json"

	// KeyFragment names the only verification method of our documents.
	KeyFragment = "#key-1"
)

var vmTypes = map[core.Algorithm]string{
	core.ES256: "EcdsaSecp256r1VerificationKey2019",
	core.EdDSA: "Ed25519VerificationKey2018",
}

// WebDID builds did:web for the domain and the optional sub path. A port
// colon is percent encoded and path segments are joined with ':'.
func WebDID(domain, path string) string {
	id := Prefix + MethodWeb + ":" + strings.ReplaceAll(domain, ":", "%3A")
	for _, seg := range pathSegments(path) {
		id += ":" + seg
	}
	return id
}

// WebDocURL is the URL where the DID document of WebDID(domain, path) must
// be hosted.
func WebDocURL(domain, path string) string {
	segs := pathSegments(path)
	if len(segs) == 0 {
		return fmt.Sprintf("https://%s/%s/%s", domain, wellKnownPath, docFile)
	}
	return fmt.Sprintf("https://%s/%s/%s", domain, strings.Join(segs, "/"), docFile)
}

func pathSegments(path string) []string {
	segs := make([]string, 0, 4)
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

// NewWebDoc builds the DID document which publishes the public key of kp
// for authentication and assertion.
func NewWebDoc(id string, kp core.KeyPair) (_ json.RawMessage, err error) {
	defer err2.Handle(&err, "did:web document")

	vmType, ok := vmTypes[kp.Algorithm]
	if !ok {
		return nil, fmt.Errorf("%w: %s", core.ErrUnsupportedAlgorithm, kp.Algorithm)
	}
	vm := did.VerificationMethod{
		ID:         id + KeyFragment,
		Type:       vmType,
		Controller: id,
		Value:      kp.PublicKey,
	}
	doc := did.BuildDoc(
		did.WithAuthentication([]did.Verification{{
			VerificationMethod: vm,
			Relationship:       did.Authentication,
		}}),
	)
	doc.ID = id
	doc.VerificationMethod = []did.VerificationMethod{vm}
	doc.AssertionMethod = []did.Verification{{
		VerificationMethod: vm,
		Relationship:       did.AssertionMethod,
	}}
	return try.To1(doc.JSONBytes()), nil
}

// NewWeb mints a new did:web identity with a fresh key pair.
func NewWeb(_ context.Context, domain, path string, alg core.Algorithm) (id *core.Identity, err error) {
	defer err2.Handle(&err, "new did:web")

	if domain == "" {
		return nil, &core.ValidationError{Msg: "domain is required"}
	}
	kp := try.To1(NewKeyPair(alg))
	didStr := WebDID(domain, path)
	doc := try.To1(NewWebDoc(didStr, kp))

	glog.V(3).Infoln("new identity:", didStr)
	return &core.Identity{DID: didStr, KeyPair: kp, DIDDocument: doc}, nil
}
