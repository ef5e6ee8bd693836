// Package ecc implements a generic interface for ECDH, ECDSA, and EdDSA.
package ecc

import (
	"crypto/elliptic"

	"github.com/ProtonMail/go-crypto/brainpool"
)

type CurveInfo struct {
	GenName string
	Curve   Curve
}

var Curves = []CurveInfo{
	{
		// NIST P-256
		GenName: "P256",
		Curve:   NewGenericCurve(elliptic.P256()),
	},
	{
		// NIST P-384
		GenName: "P384",
		Curve:   NewGenericCurve(elliptic.P384()),
	},
	{
		// NIST P-521
		GenName: "P521",
		Curve:   NewGenericCurve(elliptic.P521()),
	},
	{
		// Curve25519
		GenName: "Curve25519",
		Curve:   NewCurve25519(),
	},
	{
		// x448
		GenName: "Curve448",
		Curve:   NewX448(),
	},
	{
		// Ed25519
		GenName: "Ed25519",
		Curve:   NewEd25519(),
	},
	{
		// Ed448
		GenName: "Ed448",
		Curve:   NewEd448(),
	},
	{
		// BrainpoolP256r1
		GenName: "BrainpoolP256",
		Curve:   NewGenericCurve(brainpool.P256r1()),
	},
	{
		// BrainpoolP384r1
		GenName: "BrainpoolP384",
		Curve:   NewGenericCurve(brainpool.P384r1()),
	},
	{
		// BrainpoolP512r1
		GenName: "BrainpoolP512",
		Curve:   NewGenericCurve(brainpool.P512r1()),
	},
}

func FindByName(name string) *CurveInfo {
	for _, curveInfo := range Curves {
		if curveInfo.GenName == name {
			return &curveInfo
		}
	}
	return nil
}

func FindEdDSAByGenName(curveGenName string) EdDSACurve {
	curveInfo := FindByName(curveGenName)
	if curveInfo == nil {
		return nil
	}
	curve, ok := curveInfo.Curve.(EdDSACurve)
	if !ok {
		return nil
	}
	return curve
}

func FindECDSAByGenName(curveGenName string) ECDSACurve {
	curveInfo := FindByName(curveGenName)
	if curveInfo == nil {
		return nil
	}
	curve, ok := curveInfo.Curve.(ECDSACurve)
	if !ok {
		return nil
	}
	return curve
}

func FindECDHByGenName(curveGenName string) ECDHCurve {
	curveInfo := FindByName(curveGenName)
	if curveInfo == nil {
		return nil
	}
	curve, ok := curveInfo.Curve.(ECDHCurve)
	if !ok {
		return nil
	}
	return curve
}
