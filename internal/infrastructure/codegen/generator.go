package codegen

// Generator exposes the package functions behind an injectable value.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) VerificationQR(content string) ([]byte, error) {
	return VerificationQR(content)
}

func (g *Generator) Barcode(digits int) (string, []byte, error) {
	bc, err := GenerateBarcode(digits)
	if err != nil {
		return "", nil, err
	}
	return bc.Number, bc.PNG, nil
}
