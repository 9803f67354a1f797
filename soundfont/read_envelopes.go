package soundfont

import (
	"github.com/Thar0/mm/xmltree"
)

func (bank *Bank) readEnvelopes(list *xmltree.Node) error {
	for _, node := range list.Children {
		if node.Name != "Envelope" {
			return malformed(node, "unexpected element %v in envelope list", node.Name)
		}

		// without points the envelope is a placeholder whatever its attributes
		if !node.HasChildren() {
			bank.Envelopes = append(bank.Envelopes, &Envelope{Empty: true})
			continue
		}

		var envelope Envelope

		var specs = []attrSpec{
			required("Name", into(&envelope.Name, parseCIdentifier)),
			required("Release", into(&envelope.Release, parseU8)),
		}

		if err := parseAttrs(node, specs); err != nil {
			return err
		}

		for _, child := range node.Children {
			point, err := readEnvelopePoint(child)
			if err != nil {
				return err
			}

			envelope.Points = append(envelope.Points, point)
		}

		if _, ok := bank.envelopes.Declare(envelope.Name, &envelope); !ok {
			return badReference(node, "duplicate envelope name %v", envelope.Name)
		}

		bank.Envelopes = append(bank.Envelopes, &envelope)
	}

	return nil
}

func readEnvelopePoint(node *xmltree.Node) (EnvelopePoint, error) {
	var point EnvelopePoint
	var specs []attrSpec

	switch node.Name {
	case "Point":
		specs = []attrSpec{
			required("Delay", into(&point.Delay, parseS16)),
			required("Arg", into(&point.Arg, parseS16)),
		}
	case "Disable":
		point.Delay = EnvelopeDisable
	case "Goto":
		point.Delay = EnvelopeGoto
		specs = []attrSpec{
			required("Index", into(&point.Arg, parseS16)),
		}
	case "Restart":
		point.Delay = EnvelopeRestart
	case "Hang":
		point.Delay = EnvelopeHang
	default:
		return point, malformed(node, "unexpected element %v in envelope definition", node.Name)
	}

	if err := parseAttrs(node, specs); err != nil {
		return point, err
	}

	return point, nil
}
