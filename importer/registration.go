package importer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmdatafocus/chms_sampledata/models"
	"github.com/mmdatafocus/chms_sampledata/utils"
	"github.com/shopspring/decimal"
)

// importFinancialGateways creates payment gateways, reusing by guid.
func (m *Manager) importFinancialGateways(ctx context.Context, fragments []XFinancialGateway) error {
	for _, frag := range fragments {
		existing, err := m.store.FinancialGatewayByGUID(ctx, frag.Guid)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		if err := m.store.Add(ctx, &models.FinancialGateway{
			Guid:      frag.Guid,
			Name:      frag.Name,
			EntryType: frag.EntryType,
			IsActive:  newBool(true),
		}); err != nil {
			return err
		}
	}
	return m.store.SaveChanges(ctx)
}

// importRegistrationTemplates assembles signup products from their
// fragments. Unknown fee and discount types have no sensible default and
// abort the run.
func (m *Manager) importRegistrationTemplates(ctx context.Context, fragments []XRegistrationTemplate) error {
	for _, frag := range fragments {
		if existing, err := m.store.RegistrationTemplateByGUID(ctx, frag.Guid); err != nil {
			return err
		} else if existing != nil {
			m.templates[frag.Guid] = existing
			continue
		}

		template := &models.RegistrationTemplate{
			Guid:                         frag.Guid,
			Name:                         frag.Name,
			RegistrationTerm:             defaultString(frag.RegistrationTerm, "Registration"),
			RegistrantTerm:               defaultString(frag.RegistrantTerm, "Registrant"),
			AllowMultipleRegistrants:     newBool(utils.ParseBoolAttr(frag.AllowMultipleRegistrants)),
			ConfirmationEmailTemplate:    m.opts.ConfirmationEmailTemplate,
			ReminderEmailTemplate:        m.opts.ReminderEmailTemplate,
			PaymentReminderEmailTemplate: m.opts.PaymentReminderEmailTemplate,
			SuccessText:                  m.opts.SuccessText,
		}
		if frag.GroupType != "" {
			if typeName, ok := groupTypeNames[strings.ToLower(strings.TrimSpace(frag.GroupType))]; ok {
				if gt := m.groupTypes[typeName]; gt != nil {
					template.GroupTypeId = &gt.ID
				}
			}
		}
		if frag.Cost != "" {
			cost, err := decimal.NewFromString(frag.Cost)
			if err != nil {
				return fmt.Errorf("%w: template %s cost %q", ErrUnsupportedValue, frag.Guid, frag.Cost)
			}
			template.Cost = cost
		}

		for order, xf := range frag.Forms {
			form := models.RegistrationTemplateForm{Name: xf.Name, Order: order}
			for fieldOrder, field := range xf.Fields {
				form.Fields = append(form.Fields, models.RegistrationTemplateFormField{
					FieldName:  field.Name,
					IsRequired: newBool(utils.ParseBoolAttr(field.IsRequired)),
					Order:      fieldOrder,
				})
			}
			template.Forms = append(template.Forms, form)
		}

		for _, xf := range frag.Fees {
			feeType, err := models.ParseRegistrationFeeType(xf.Type)
			if err != nil {
				return fmt.Errorf("%w: template %s: %v", ErrUnsupportedValue, frag.Guid, err)
			}
			template.Fees = append(template.Fees, models.RegistrationTemplateFee{
				Name:      xf.Name,
				FeeType:   feeType,
				CostValue: xf.Cost,
			})
		}

		for _, xd := range frag.Discounts {
			discountType, err := models.ParseDiscountType(xd.Type)
			if err != nil {
				return fmt.Errorf("%w: template %s: %v", ErrUnsupportedValue, frag.Guid, err)
			}
			value, err := decimal.NewFromString(xd.Value)
			if err != nil {
				return fmt.Errorf("%w: template %s discount %q", ErrUnsupportedValue, frag.Guid, xd.Value)
			}
			template.Discounts = append(template.Discounts, models.RegistrationTemplateDiscount{
				Code:         xd.Code,
				DiscountType: discountType,
				Value:        value,
			})
		}

		if err := m.store.Add(ctx, template); err != nil {
			return err
		}
		if err := m.store.SaveChanges(ctx); err != nil {
			return fmt.Errorf("create registration template %s: %w", frag.Guid, err)
		}
		m.templates[frag.Guid] = template
	}
	return nil
}

// importRegistrationInstances schedules instances of the templates.
func (m *Manager) importRegistrationInstances(ctx context.Context, fragments []XRegistrationInstance) error {
	for _, frag := range fragments {
		if existing, err := m.store.RegistrationInstanceByGUID(ctx, frag.Guid); err != nil {
			return err
		} else if existing != nil {
			continue
		}

		template := m.templates[frag.TemplateGuid]
		if template == nil {
			stored, err := m.store.RegistrationTemplateByGUID(ctx, frag.TemplateGuid)
			if err != nil {
				return err
			}
			if stored == nil {
				return &MissingReferenceError{Kind: "registration template", Key: frag.TemplateGuid}
			}
			template = stored
		}

		instance := &models.RegistrationInstance{
			Guid:         frag.Guid,
			TemplateId:   template.ID,
			Name:         frag.Name,
			MaxAttendees: frag.MaxAttendees,
			IsActive:     newBool(true),
		}
		if frag.Start != "" {
			if start, err := time.Parse(dateLayout, frag.Start); err == nil {
				instance.StartDateTime = &start
			}
		}
		if frag.End != "" {
			if end, err := time.Parse(dateLayout, frag.End); err == nil {
				instance.EndDateTime = &end
			}
		}
		if frag.Account != "" {
			account, err := m.ensureAccount(ctx, frag.Account)
			if err != nil {
				return err
			}
			instance.AccountId = &account.ID
		}
		if frag.PlacementGroupGuid != "" {
			groupId, err := m.ids.Group(frag.PlacementGroupGuid)
			if err != nil {
				return err
			}
			instance.PlacementGroupId = &groupId
		}

		if err := m.store.Add(ctx, instance); err != nil {
			return err
		}
		if err := m.store.SaveChanges(ctx); err != nil {
			return fmt.Errorf("create registration instance %s: %w", frag.Guid, err)
		}
	}
	return nil
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
