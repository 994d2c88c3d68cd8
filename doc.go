// Package sm implements the SM2/SM3/SM4 Chinese commercial cryptography
// suite: SM3 hashing, SM4 block encryption in CBC mode, and the SM2
// public-key scheme (keygen, encryption, signatures, two-pass key
// exchange) over the GB/T 32918 prime-order curve.
package sm
