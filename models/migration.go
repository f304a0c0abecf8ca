package models

import (
	"log"

	"github.com/mmdatafocus/chms_sampledata/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&DefinedType{}, &DefinedValue{},
		&Campus{}, &Location{}, &Schedule{},
		&GroupType{}, &GroupTypeRole{}, &Group{}, &GroupMember{}, &GroupAttributeValue{},
		&Person{}, &PersonAlias{}, &PhoneNumber{}, &PersonPreviousName{}, &AttributeValue{},
		&UserLogin{}, &Note{}, &BinaryFile{}, &Following{}, &ConnectionRequest{},
		&FinancialAccount{}, &FinancialGateway{}, &FinancialBatch{},
		&FinancialTransaction{}, &FinancialTransactionDetail{},
		&Attendance{}, &AttendanceCode{},
		&RegistrationTemplate{}, &RegistrationTemplateForm{}, &RegistrationTemplateFormField{},
		&RegistrationTemplateFee{}, &RegistrationTemplateDiscount{}, &RegistrationInstance{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
