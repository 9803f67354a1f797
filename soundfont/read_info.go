package soundfont

import (
	"github.com/Thar0/mm/xmltree"
)

const RootElement = "Soundfont"

// ReadInfo reads the bank attributes from the root element. The caller needs
// them before building to locate the sample banks.
func ReadInfo(root *xmltree.Node) (Info, error) {
	var info Info

	if root.Name != RootElement {
		return info, malformed(root, "root element must be <%v>, got <%v>", RootElement, root.Name)
	}

	var specs = []attrSpec{
		required("Name", into(&info.Name, parseCIdentifier)),
		optional("Symbol", into(&info.Symbol, parseCIdentifier)),
		required("Index", into(&info.Index, parseInt)),
		required("Medium", into(&info.Medium, parseString)),
		required("CachePolicy", into(&info.CachePolicy, parseString)),
		required("SampleBank", into(&info.SampleBank, parseString)),
		optional("SampleBankDD", into(&info.SampleBankDD, parseString)),
		optional("PointerIndex", intoOptional(&info.PointerIndex, parseInt)),
		optional("PadToSize", into(&info.PadToSize, parseUint)),
		optional("LoopsHaveFrames", into(&info.LoopsHaveFrames, parseBool)),
	}

	if err := parseAttrs(root, specs); err != nil {
		return info, err
	}

	return info, nil
}
