package ews

import "github.com/beevik/etree"

// isEqualTo builds a
//
//	<m:Restriction>
//	  <t:IsEqualTo>
//	    <t:FieldURI FieldURI="field"/>
//	    <t:FieldURIOrConstant>
//	      <t:Constant Value="value"/>
//	    </t:FieldURIOrConstant>
//	  </t:IsEqualTo>
//	</m:Restriction>
//
// subtree, detached from any document. Callers append it under a FindFolder
// or FindItem request element.
func isEqualTo(field, value string) *etree.Element {
	restriction := etree.NewElement("m:Restriction")
	equalTo := restriction.CreateElement("t:IsEqualTo")

	fieldURI := equalTo.CreateElement("t:FieldURI")
	fieldURI.CreateAttr("FieldURI", field)

	fieldOrConstant := equalTo.CreateElement("t:FieldURIOrConstant")
	constant := fieldOrConstant.CreateElement("t:Constant")
	constant.CreateAttr("Value", value)

	return restriction
}
