// Command loquat-sign signs a message with the persisted secret key and
// writes the signature bundle to ./loquat_keys/signature.json.
package main

import (
	"flag"
	"fmt"
	"log"

	"loquat-signature/digest"
	"loquat-signature/loquat"
)

func main() {
	msg := flag.String("msg", "Hello, world!", "message to sign")
	flag.Parse()

	sk, alg, err := loquat.LoadSecretKey()
	if err != nil {
		log.Fatalf("load secret key: %v", err)
	}
	h, err := digest.New(alg)
	if err != nil {
		log.Fatalf("digest: %v", err)
	}
	scheme := loquat.NewScheme(h)
	sig, err := scheme.Sign(sk, []byte(*msg))
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	if err := loquat.SaveSignature(sig, alg); err != nil {
		log.Fatalf("save signature: %v", err)
	}
	fmt.Println("Signed message: ", *msg)
	fmt.Println("Sigma:          ", sig.Sigma.Text(16))
	fmt.Println("Merkle root:    ", sig.MerkleRoot.Text(16))
	fmt.Println("Signature written to ./loquat_keys/signature.json")
}
