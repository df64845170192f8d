package ews

import "testing"

func TestIsEqualTo(t *testing.T) {
	restriction := isEqualTo("folder:DisplayName", "AllItems")

	if restriction.Tag != "Restriction" {
		t.Fatalf("expected root tag Restriction, got %s", restriction.Tag)
	}

	equalTo := restriction.FindElement("IsEqualTo")
	if equalTo == nil {
		t.Fatal("expected IsEqualTo child")
	}

	fieldURI := equalTo.FindElement("FieldURI")
	if fieldURI == nil || fieldURI.SelectAttrValue("FieldURI", "") != "folder:DisplayName" {
		t.Fatalf("expected FieldURI=folder:DisplayName, got %+v", fieldURI)
	}

	constant := equalTo.FindElement("FieldURIOrConstant/Constant")
	if constant == nil || constant.SelectAttrValue("Value", "") != "AllItems" {
		t.Fatalf("expected Constant Value=AllItems, got %+v", constant)
	}
}
