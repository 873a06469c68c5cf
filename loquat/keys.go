package loquat

// JSON persistence for keypairs and signatures, used by the cmd drivers.
// Files live under ./loquat_keys/.

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"time"

	"loquat-signature/digest"
	"loquat-signature/field"
)

const keyDir = "loquat_keys"

// PublicKeyFile is a public key persisted to JSON.
type PublicKeyFile struct {
	Version   string `json:"version"`
	Algorithm string `json:"algorithm"`
	PublicKey string `json:"public_key"` // hex
}

// PrivateKeyFile is a secret key persisted to JSON.
type PrivateKeyFile struct {
	Version   string `json:"version"`
	Algorithm string `json:"algorithm"`
	SecretKey string `json:"secret_key"` // hex, fixed-width field encoding
}

// SignatureFile is a signature bundle persisted to JSON.
type SignatureFile struct {
	Version    string `json:"version"`
	Timestamp  string `json:"timestamp"`
	Algorithm  string `json:"algorithm"`
	Sigma      string `json:"sigma"`       // hex, fixed-width field encoding
	MerkleRoot string `json:"merkle_root"` // hex, minimal-width (may exceed p)
}

// SaveKeyPair writes public.json and private.json under ./loquat_keys/.
func SaveKeyPair(kp *KeyPair, alg digest.Algorithm) error {
	if kp == nil {
		return nil
	}
	f := field.New()
	skEnc, err := f.Encode(kp.SecretKey)
	if err != nil {
		return fmt.Errorf("loquat: save keypair: %w", err)
	}
	pub := &PublicKeyFile{
		Version:   "loquat-key-v1",
		Algorithm: alg.String(),
		PublicKey: hex.EncodeToString(kp.PublicKey),
	}
	priv := &PrivateKeyFile{
		Version:   "loquat-key-v1",
		Algorithm: alg.String(),
		SecretKey: hex.EncodeToString(skEnc),
	}
	if err := writeJSON(filepath.Join(keyDir, "public.json"), pub); err != nil {
		return err
	}
	return writeJSON(filepath.Join(keyDir, "private.json"), priv)
}

// LoadPublicKey reads ./loquat_keys/public.json.
func LoadPublicKey() ([]byte, digest.Algorithm, error) {
	var pub PublicKeyFile
	if err := readJSON(filepath.Join(keyDir, "public.json"), &pub); err != nil {
		return nil, 0, err
	}
	alg, err := digest.Parse(pub.Algorithm)
	if err != nil {
		return nil, 0, err
	}
	pk, err := hex.DecodeString(pub.PublicKey)
	if err != nil {
		return nil, 0, fmt.Errorf("loquat: decode public key: %w", err)
	}
	return pk, alg, nil
}

// LoadSecretKey reads ./loquat_keys/private.json.
func LoadSecretKey() (*big.Int, digest.Algorithm, error) {
	var priv PrivateKeyFile
	if err := readJSON(filepath.Join(keyDir, "private.json"), &priv); err != nil {
		return nil, 0, err
	}
	alg, err := digest.Parse(priv.Algorithm)
	if err != nil {
		return nil, 0, err
	}
	raw, err := hex.DecodeString(priv.SecretKey)
	if err != nil {
		return nil, 0, fmt.Errorf("loquat: decode secret key: %w", err)
	}
	sk, err := field.New().Decode(raw)
	if err != nil {
		return nil, 0, err
	}
	return sk, alg, nil
}

// SaveSignature writes the signature bundle to ./loquat_keys/signature.json.
func SaveSignature(sig *Signature, alg digest.Algorithm) error {
	if sig == nil {
		return nil
	}
	sigmaEnc, err := field.New().Encode(sig.Sigma)
	if err != nil {
		return fmt.Errorf("loquat: save signature: %w", err)
	}
	out := &SignatureFile{
		Version:    "loquat-signature-v1",
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Algorithm:  alg.String(),
		Sigma:      hex.EncodeToString(sigmaEnc),
		MerkleRoot: sig.MerkleRoot.Text(16),
	}
	return writeJSON(filepath.Join(keyDir, "signature.json"), out)
}

// LoadSignature reads ./loquat_keys/signature.json.
func LoadSignature() (*Signature, digest.Algorithm, error) {
	var in SignatureFile
	if err := readJSON(filepath.Join(keyDir, "signature.json"), &in); err != nil {
		return nil, 0, err
	}
	alg, err := digest.Parse(in.Algorithm)
	if err != nil {
		return nil, 0, err
	}
	raw, err := hex.DecodeString(in.Sigma)
	if err != nil {
		return nil, 0, fmt.Errorf("loquat: decode sigma: %w", err)
	}
	sigma, err := field.New().Decode(raw)
	if err != nil {
		return nil, 0, err
	}
	root, ok := new(big.Int).SetString(in.MerkleRoot, 16)
	if !ok {
		return nil, 0, fmt.Errorf("loquat: invalid merkle root hex %q", in.MerkleRoot)
	}
	return &Signature{Sigma: sigma, MerkleRoot: root}, alg, nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
