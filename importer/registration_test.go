package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/mmdatafocus/chms_sampledata/models"
)

const registrationDocXML = `<sampleData>
  <financialGateways>
    <gateway guid="gw-1" name="Test Gateway" entryType="Credit Card"/>
  </financialGateways>
  <groups>
    <group guid="grp-camp" name="Summer Camp Attendees" type="general"/>
  </groups>
  <registrationTemplates>
    <registrationTemplate guid="tpl-camp" name="Summer Camp" groupType="general" allowMultipleRegistrants="true" cost="175.00">
      <forms>
        <form name="Camper Details">
          <fields>
            <field name="Allergies" isRequired="true"/>
            <field name="T-Shirt Size"/>
          </fields>
        </form>
      </forms>
      <fees>
        <fee name="Canoe Rental" type="Single" cost="25"/>
      </fees>
      <discounts>
        <discount code="EARLYBIRD" type="Percentage" value="10"/>
      </discounts>
    </registrationTemplate>
  </registrationTemplates>
  <registrationInstances>
    <registrationInstance guid="inst-2026" templateGuid="tpl-camp" name="Summer Camp 2026" start="2026-06-01" end="2026-06-05" maxAttendees="120" account="Camp Fund" placementGroupGuid="grp-camp"/>
  </registrationInstances>
</sampleData>`

func TestImportRegistrationTemplatesAndInstances(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := newTestManager(t, store, Options{RandomizerSeed: 1, SuccessText: "See you there"})

	doc := parseTestDocument(t, registrationDocXML)
	if err := m.CreateFromDocument(ctx, doc); err != nil {
		t.Fatalf("CreateFromDocument: %v", err)
	}

	if gw, _ := store.FinancialGatewayByGUID(ctx, "gw-1"); gw == nil {
		t.Fatalf("gateway not created")
	}

	tpl, _ := store.RegistrationTemplateByGUID(ctx, "tpl-camp")
	if tpl == nil {
		t.Fatalf("template not created")
	}
	if tpl.RegistrationTerm != "Registration" || tpl.RegistrantTerm != "Registrant" {
		t.Fatalf("term defaults not applied: %q / %q", tpl.RegistrationTerm, tpl.RegistrantTerm)
	}
	if tpl.AllowMultipleRegistrants == nil || !*tpl.AllowMultipleRegistrants {
		t.Fatalf("allowMultipleRegistrants=true not honored")
	}
	if tpl.Cost.String() != "175" {
		t.Fatalf("cost %s, want 175", tpl.Cost)
	}
	if tpl.SuccessText != "See you there" {
		t.Fatalf("configured success text not applied")
	}
	if len(tpl.Forms) != 1 || len(tpl.Forms[0].Fields) != 2 {
		t.Fatalf("form structure wrong: %+v", tpl.Forms)
	}
	if tpl.Forms[0].Fields[0].IsRequired == nil || !*tpl.Forms[0].Fields[0].IsRequired {
		t.Fatalf("required field flag lost")
	}
	if len(tpl.Fees) != 1 || tpl.Fees[0].FeeType != models.RegistrationFeeTypeSingle {
		t.Fatalf("fee wrong: %+v", tpl.Fees)
	}
	if len(tpl.Discounts) != 1 || tpl.Discounts[0].DiscountType != models.DiscountTypePercentage {
		t.Fatalf("discount wrong: %+v", tpl.Discounts)
	}

	inst, _ := store.RegistrationInstanceByGUID(ctx, "inst-2026")
	if inst == nil {
		t.Fatalf("instance not created")
	}
	if inst.TemplateId != tpl.ID {
		t.Fatalf("instance template id %d, want %d", inst.TemplateId, tpl.ID)
	}
	if inst.MaxAttendees != 120 {
		t.Fatalf("max attendees %d, want 120", inst.MaxAttendees)
	}
	if inst.AccountId == nil {
		t.Fatalf("instance account not resolved")
	}
	if acct, _ := store.FinancialAccountByName(ctx, "Camp Fund"); acct == nil || *inst.AccountId != acct.ID {
		t.Fatalf("instance account mismatch")
	}
	camp, _ := store.GroupByGUID(ctx, "grp-camp")
	if inst.PlacementGroupId == nil || *inst.PlacementGroupId != camp.ID {
		t.Fatalf("placement group not resolved")
	}
}

func TestImportRegistrationTemplateRejectsUnknownDiscountType(t *testing.T) {
	xml := `<sampleData>
  <registrationTemplates>
    <registrationTemplate guid="tpl-bad" name="Bad">
      <discounts>
        <discount code="X" type="coupon" value="5"/>
      </discounts>
    </registrationTemplate>
  </registrationTemplates>
</sampleData>`

	m := newTestManager(t, newMemStore(), Options{RandomizerSeed: 1})
	err := m.CreateFromDocument(context.Background(), parseTestDocument(t, xml))
	if !errors.Is(err, ErrUnsupportedValue) {
		t.Fatalf("expected ErrUnsupportedValue, got %v", err)
	}
}

func TestImportRegistrationInstanceRequiresTemplate(t *testing.T) {
	xml := `<sampleData>
  <registrationInstances>
    <registrationInstance guid="inst-orphan" templateGuid="tpl-missing" name="Orphan"/>
  </registrationInstances>
</sampleData>`

	m := newTestManager(t, newMemStore(), Options{RandomizerSeed: 1})
	err := m.CreateFromDocument(context.Background(), parseTestDocument(t, xml))
	if !IsMissingReference(err) {
		t.Fatalf("expected a missing reference error, got %v", err)
	}
}

func TestImportRegistrationTemplateGroupTypeIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	m := newTestManager(t, store, Options{RandomizerSeed: 1})

	doc := parseTestDocument(t, `<sampleData>
  <registrationTemplates>
    <registrationTemplate guid="tpl-retreat" name="Fall Retreat" groupType=" SmallGroup "/>
  </registrationTemplates>
</sampleData>`)
	if err := m.CreateFromDocument(ctx, doc); err != nil {
		t.Fatalf("CreateFromDocument: %v", err)
	}

	tpl, _ := store.RegistrationTemplateByGUID(ctx, "tpl-retreat")
	if tpl == nil {
		t.Fatalf("template not created")
	}
	gt, _ := store.GroupTypeByName(ctx, models.GroupTypeSmallGroup)
	if gt == nil {
		t.Fatalf("small group type not seeded")
	}
	if tpl.GroupTypeId == nil || *tpl.GroupTypeId != gt.ID {
		t.Fatalf("mixed-case group type attribute did not resolve")
	}
}
