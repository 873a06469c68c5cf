// Command loquat-keygen generates a Loquat key pair and persists it under
// ./loquat_keys/. With -seed, key material is drawn from a keyed PRNG for
// reproducible test setups instead of crypto/rand.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"

	"github.com/tuneinsight/lattigo/v4/utils"

	"loquat-signature/digest"
	"loquat-signature/loquat"
)

func main() {
	algName := flag.String("alg", "sha3-256", "digest algorithm: sha3-256|shake128|poseidon|griffin")
	seed := flag.String("seed", "", "optional seed string for reproducible key generation (testing only)")
	flag.Parse()

	alg, err := digest.Parse(*algName)
	if err != nil {
		log.Fatalf("digest: %v", err)
	}
	h, err := digest.New(alg)
	if err != nil {
		log.Fatalf("digest: %v", err)
	}

	var rnd io.Reader
	if *seed != "" {
		prng, err := utils.NewKeyedPRNG([]byte(*seed))
		if err != nil {
			log.Fatalf("keyed prng: %v", err)
		}
		rnd = prng
		fmt.Println("WARNING: seeded key generation is for testing only")
	}

	scheme := loquat.NewScheme(h)
	kp, err := scheme.Keygen(rnd)
	if err != nil {
		log.Fatalf("keygen: %v", err)
	}
	if err := loquat.SaveKeyPair(kp, alg); err != nil {
		log.Fatalf("save keypair: %v", err)
	}
	fmt.Println("Generated Loquat key pair")
	fmt.Println("Algorithm: ", alg)
	fmt.Println("Public key:", hex.EncodeToString(kp.PublicKey))
	fmt.Println("Keys written to ./loquat_keys/")
}
