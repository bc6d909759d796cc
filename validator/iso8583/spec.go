package iso8583

import (
	"github.com/moov-io/iso8583"
	"github.com/moov-io/iso8583/encoding"
	"github.com/moov-io/iso8583/field"
	"github.com/moov-io/iso8583/prefix"
)

const (
	mtiVerificationRequest  = "0100"
	mtiVerificationResponse = "0110"

	fieldPAN            = 2
	fieldSTAN           = 11
	fieldResponseCode   = 39
	fieldAdditionalData = 44

	maxAdditionalData = 25

	ResponseApproved          = "00"
	ResponseInvalidCardNumber = "14"
	ResponseFormatError       = "30"
)

// Spec is the subset of ISO 8583 used by the account verification front end.
var Spec = &iso8583.MessageSpec{
	Name: "Card number verification",
	Fields: map[int]field.Field{
		0: field.NewString(&field.Spec{
			Length:      4,
			Description: "Message Type Indicator",
			Enc:         encoding.ASCII,
			Pref:        prefix.ASCII.Fixed,
		}),
		1: field.NewBitmap(&field.Spec{
			Length:      8,
			Description: "Bitmap",
			Enc:         encoding.BytesToASCIIHex,
			Pref:        prefix.Hex.Fixed,
		}),
		fieldPAN: field.NewString(&field.Spec{
			Length:      19,
			Description: "Primary Account Number",
			Enc:         encoding.ASCII,
			Pref:        prefix.ASCII.LL,
		}),
		fieldSTAN: field.NewString(&field.Spec{
			Length:      6,
			Description: "Systems Trace Audit Number",
			Enc:         encoding.ASCII,
			Pref:        prefix.ASCII.Fixed,
		}),
		fieldResponseCode: field.NewString(&field.Spec{
			Length:      2,
			Description: "Response Code",
			Enc:         encoding.ASCII,
			Pref:        prefix.ASCII.Fixed,
		}),
		fieldAdditionalData: field.NewString(&field.Spec{
			Length:      maxAdditionalData,
			Description: "Additional Response Data",
			Enc:         encoding.ASCII,
			Pref:        prefix.ASCII.LL,
		}),
	},
}
