package entities

// ConfigurationError reports a setting that must be configured before an operation can run
type ConfigurationError struct {
	Setting string
	Message string
}

func (e *ConfigurationError) Error() string {
	return e.Message
}

// Configuration holds the installation-wide production settings
type Configuration struct {
	DisassemblyDifferenceProduct *Product
}

// DifferenceProduct returns the product absorbing disassembly cost differences
func (c *Configuration) DifferenceProduct() (*Product, error) {
	if c == nil || c.DisassemblyDifferenceProduct == nil {
		return nil, &ConfigurationError{
			Setting: "disassembly_difference_product",
			Message: "disassembly difference product not set",
		}
	}
	return c.DisassemblyDifferenceProduct, nil
}
