// Command loquat-verify checks the persisted signature bundle against the
// persisted public key and the given message.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"loquat-signature/digest"
	"loquat-signature/loquat"
)

func main() {
	msg := flag.String("msg", "Hello, world!", "message the signature claims to cover")
	flag.Parse()

	pk, alg, err := loquat.LoadPublicKey()
	if err != nil {
		log.Fatalf("load public key: %v", err)
	}
	sig, sigAlg, err := loquat.LoadSignature()
	if err != nil {
		log.Fatalf("load signature: %v", err)
	}
	if sigAlg != alg {
		log.Fatalf("algorithm mismatch: key uses %v, signature uses %v", alg, sigAlg)
	}
	h, err := digest.New(alg)
	if err != nil {
		log.Fatalf("digest: %v", err)
	}
	scheme := loquat.NewScheme(h)
	if scheme.Verify(pk, []byte(*msg), sig) {
		fmt.Println("Signature VALID for message:", *msg)
		return
	}
	fmt.Println("Signature INVALID for message:", *msg)
	os.Exit(1)
}
