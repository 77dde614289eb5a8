// Package graphql re-exposes the payment, creditor and debtor services
// over a GraphQL endpoint with the same filtering, soft-delete and error
// semantics as the REST surface.
package graphql

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"
	gqlhandler "github.com/graphql-go/handler"
	"github.com/shopspring/decimal"

	partyapp "github.com/paymentecho/backend/internal/application/party"
	paymentapp "github.com/paymentecho/backend/internal/application/payment"
	"github.com/paymentecho/backend/internal/domain/shared"
	"github.com/paymentecho/backend/internal/infrastructure/i18n"
	"github.com/paymentecho/backend/internal/interfaces/http/middleware"
)

// Schema wires the application services into a GraphQL schema
type Schema struct {
	payments   *paymentapp.Service
	creditors  *partyapp.Service
	debtors    *partyapp.Service
	translator *i18n.Translator
	schema     graphql.Schema

	paymentType  *graphql.Object
	creditorType *graphql.Object
	debtorType   *graphql.Object
}

// New builds the schema over the given services
func New(payments *paymentapp.Service, creditors, debtors *partyapp.Service, translator *i18n.Translator) (*Schema, error) {
	s := &Schema{
		payments:   payments,
		creditors:  creditors,
		debtors:    debtors,
		translator: translator,
	}

	query := s.queryType()
	mutation := s.mutationType()
	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
	if err != nil {
		return nil, err
	}
	s.schema = schema
	return s, nil
}

// Handler returns the HTTP handler serving POST /graphql
func (s *Schema) Handler() *gqlhandler.Handler {
	return gqlhandler.New(&gqlhandler.Config{
		Schema:   &s.schema,
		Pretty:   true,
		GraphiQL: false,
	})
}

// Do executes a query directly, used in tests
func (s *Schema) Do(ctx context.Context, query string, variables map[string]any) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  query,
		VariableValues: variables,
		Context:        ctx,
	})
}

// localize turns domain failures into GraphQL errors carrying the
// locale-resolved message; everything else surfaces as-is.
func (s *Schema) localize(ctx context.Context, err error) error {
	locale := middleware.LocaleFromContext(ctx)

	var nfe *shared.NotFoundError
	if errors.As(err, &nfe) {
		return errors.New(s.translator.Localize(locale, nfe.MessageKey(), map[string]any{"id": nfe.ID.String()}, nfe.Error()))
	}
	var de *shared.DomainError
	if errors.As(err, &de) {
		if key, ok := domainMessageKeys[de.Code]; ok {
			return errors.New(s.translator.Localize(locale, key, nil, de.Message))
		}
		return errors.New(de.Message)
	}
	return err
}

var domainMessageKeys = map[string]string{
	"INVALID_AMOUNT":   "payment.invalid.amount",
	"INVALID_CURRENCY": "payment.invalid.currency",
	"INVALID_STATUS":   "payment.invalid.status",
}

func totalPages(total int64, size int) int {
	if size <= 0 {
		return 0
	}
	pages := int(total) / size
	if int(total)%size != 0 {
		pages++
	}
	return pages
}

// graphQL object types

func paymentFields() graphql.Fields {
	return graphql.Fields{
		"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"amount":    &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
		"currency":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"status":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"creditorId": &graphql.Field{
			Type: graphql.String,
		},
		"debtorId": &graphql.Field{
			Type: graphql.String,
		},
	}
}

func counterpartyFields() graphql.Fields {
	return graphql.Fields{
		"id":            &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"name":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"accountNumber": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"bankCode":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"address":       &graphql.Field{Type: graphql.String},
		"email":         &graphql.Field{Type: graphql.String},
		"createdAt":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"updatedAt":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	}
}

func pageFields(itemsKey string, itemType *graphql.Object) graphql.Fields {
	return graphql.Fields{
		itemsKey:     &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(itemType)))},
		"total":      &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"page":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"size":       &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"totalPages": &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
	}
}

// wire representations: graphql-go resolves plain maps without reflection
// surprises, so responses are converted explicitly

func paymentToMap(p paymentapp.PaymentResponse) map[string]any {
	m := map[string]any{
		"id":        p.ID.String(),
		"amount":    p.Amount.InexactFloat64(),
		"currency":  p.Currency,
		"status":    p.Status,
		"createdAt": p.CreatedAt.Format(time.RFC3339),
	}
	if p.CreditorID != nil {
		m["creditorId"] = p.CreditorID.String()
	}
	if p.DebtorID != nil {
		m["debtorId"] = p.DebtorID.String()
	}
	return m
}

func paymentsToMaps(payments []paymentapp.PaymentResponse) []map[string]any {
	out := make([]map[string]any, len(payments))
	for i, p := range payments {
		out[i] = paymentToMap(p)
	}
	return out
}

func counterpartyToMap(c partyapp.CounterpartyResponse) map[string]any {
	m := map[string]any{
		"id":            c.ID.String(),
		"name":          c.Name,
		"accountNumber": c.AccountNumber,
		"bankCode":      c.BankCode,
		"createdAt":     c.CreatedAt.Format(time.RFC3339),
		"updatedAt":     c.UpdatedAt.Format(time.RFC3339),
	}
	if c.Address != "" {
		m["address"] = c.Address
	}
	if c.Email != "" {
		m["email"] = c.Email
	}
	return m
}

func counterpartiesToMaps(parties []partyapp.CounterpartyResponse) []map[string]any {
	out := make([]map[string]any, len(parties))
	for i, c := range parties {
		out[i] = counterpartyToMap(c)
	}
	return out
}

func pageToMap(itemsKey string, items any, total int64, req shared.PageRequest) map[string]any {
	return map[string]any{
		itemsKey:     items,
		"total":      int(total),
		"page":       req.Page,
		"size":       req.Size,
		"totalPages": totalPages(total, req.Size),
	}
}

// argument helpers

func intArg(p graphql.ResolveParams, name string, def int) int {
	if v, ok := p.Args[name].(int); ok {
		return v
	}
	return def
}

func stringArg(p graphql.ResolveParams, name string) string {
	v, _ := p.Args[name].(string)
	return v
}

func optStringArg(p graphql.ResolveParams, name string) *string {
	if v, ok := p.Args[name].(string); ok && v != "" {
		return &v
	}
	return nil
}

func pagingArgs(p graphql.ResolveParams) (page, size int) {
	return intArg(p, "page", 0), intArg(p, "size", shared.DefaultPageSize)
}

func uuidArg(p graphql.ResolveParams, name string) (uuid.UUID, error) {
	return uuid.Parse(stringArg(p, name))
}

func withPaging(extra graphql.FieldConfigArgument) graphql.FieldConfigArgument {
	args := graphql.FieldConfigArgument{
		"page": &graphql.ArgumentConfig{Type: graphql.Int},
		"size": &graphql.ArgumentConfig{Type: graphql.Int},
	}
	for name, cfg := range extra {
		args[name] = cfg
	}
	return args
}

func (s *Schema) queryType() *graphql.Object {
	paymentType := graphql.NewObject(graphql.ObjectConfig{Name: "Payment", Fields: paymentFields()})
	creditorType := graphql.NewObject(graphql.ObjectConfig{Name: "Creditor", Fields: counterpartyFields()})
	debtorType := graphql.NewObject(graphql.ObjectConfig{Name: "Debtor", Fields: counterpartyFields()})

	paymentPageType := graphql.NewObject(graphql.ObjectConfig{Name: "PaymentPage", Fields: pageFields("payments", paymentType)})
	creditorPageType := graphql.NewObject(graphql.ObjectConfig{Name: "CreditorPage", Fields: pageFields("creditors", creditorType)})
	debtorPageType := graphql.NewObject(graphql.ObjectConfig{Name: "DebtorPage", Fields: pageFields("debtors", debtorType)})

	s.paymentType = paymentType
	s.creditorType = creditorType
	s.debtorType = debtorType

	listPayments := func(p graphql.ResolveParams, filter paymentapp.ListFilter) (any, error) {
		payments, total, err := s.payments.List(p.Context, filter)
		if err != nil {
			return nil, s.localize(p.Context, err)
		}
		req := shared.PageRequest{Page: filter.Page, Size: filter.Size}.Normalize()
		return pageToMap("payments", paymentsToMaps(payments), total, req), nil
	}

	listCounterparties := func(p graphql.ResolveParams, svc *partyapp.Service, key string, filter partyapp.ListFilter) (any, error) {
		parties, total, err := svc.List(p.Context, filter)
		if err != nil {
			return nil, s.localize(p.Context, err)
		}
		req := shared.PageRequest{Page: filter.Page, Size: filter.Size}.Normalize()
		return pageToMap(key, counterpartiesToMaps(parties), total, req), nil
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"payments": &graphql.Field{
				Type: graphql.NewNonNull(paymentPageType),
				Args: withPaging(graphql.FieldConfigArgument{
					"sort": &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					page, size := pagingArgs(p)
					return listPayments(p, paymentapp.ListFilter{Page: page, Size: size, Sort: stringArg(p, "sort")})
				},
			},
			"payment": &graphql.Field{
				Type: paymentType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id, err := uuidArg(p, "id")
					if err != nil {
						return nil, err
					}
					payment, err := s.payments.GetByID(p.Context, id)
					if err != nil {
						return nil, s.localize(p.Context, err)
					}
					return paymentToMap(*payment), nil
				},
			},
			"paymentsByStatus": &graphql.Field{
				Type: graphql.NewNonNull(paymentPageType),
				Args: withPaging(graphql.FieldConfigArgument{
					"status": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					page, size := pagingArgs(p)
					return listPayments(p, paymentapp.ListFilter{Status: optStringArg(p, "status"), Page: page, Size: size})
				},
			},
			"paymentsByCurrency": &graphql.Field{
				Type: graphql.NewNonNull(paymentPageType),
				Args: withPaging(graphql.FieldConfigArgument{
					"currency": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					page, size := pagingArgs(p)
					return listPayments(p, paymentapp.ListFilter{Currency: optStringArg(p, "currency"), Page: page, Size: size})
				},
			},
			"paymentsByAmountRange": &graphql.Field{
				Type: graphql.NewNonNull(paymentPageType),
				Args: withPaging(graphql.FieldConfigArgument{
					"minAmount": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"maxAmount": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					page, size := pagingArgs(p)
					min := decimal.NewFromFloat(p.Args["minAmount"].(float64))
					max := decimal.NewFromFloat(p.Args["maxAmount"].(float64))
					return listPayments(p, paymentapp.ListFilter{MinAmount: &min, MaxAmount: &max, Page: page, Size: size})
				},
			},
			"creditors": &graphql.Field{
				Type: graphql.NewNonNull(creditorPageType),
				Args: withPaging(graphql.FieldConfigArgument{
					"sort": &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					page, size := pagingArgs(p)
					return listCounterparties(p, s.creditors, "creditors", partyapp.ListFilter{Page: page, Size: size, Sort: stringArg(p, "sort")})
				},
			},
			"creditor": s.counterpartyField(creditorType, func() *partyapp.Service { return s.creditors }),
			"creditorsByName": &graphql.Field{
				Type: graphql.NewNonNull(creditorPageType),
				Args: withPaging(graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					page, size := pagingArgs(p)
					return listCounterparties(p, s.creditors, "creditors", partyapp.ListFilter{Name: optStringArg(p, "name"), Page: page, Size: size})
				},
			},
			"creditorsByBankCode": &graphql.Field{
				Type: graphql.NewNonNull(creditorPageType),
				Args: withPaging(graphql.FieldConfigArgument{
					"bankCode": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					page, size := pagingArgs(p)
					return listCounterparties(p, s.creditors, "creditors", partyapp.ListFilter{BankCode: optStringArg(p, "bankCode"), Page: page, Size: size})
				},
			},
			"debtors": &graphql.Field{
				Type: graphql.NewNonNull(debtorPageType),
				Args: withPaging(graphql.FieldConfigArgument{
					"sort": &graphql.ArgumentConfig{Type: graphql.String},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					page, size := pagingArgs(p)
					return listCounterparties(p, s.debtors, "debtors", partyapp.ListFilter{Page: page, Size: size, Sort: stringArg(p, "sort")})
				},
			},
			"debtor": s.counterpartyField(debtorType, func() *partyapp.Service { return s.debtors }),
			"debtorsByName": &graphql.Field{
				Type: graphql.NewNonNull(debtorPageType),
				Args: withPaging(graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					page, size := pagingArgs(p)
					return listCounterparties(p, s.debtors, "debtors", partyapp.ListFilter{Name: optStringArg(p, "name"), Page: page, Size: size})
				},
			},
			"debtorsByBankCode": &graphql.Field{
				Type: graphql.NewNonNull(debtorPageType),
				Args: withPaging(graphql.FieldConfigArgument{
					"bankCode": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				}),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					page, size := pagingArgs(p)
					return listCounterparties(p, s.debtors, "debtors", partyapp.ListFilter{BankCode: optStringArg(p, "bankCode"), Page: page, Size: size})
				},
			},
		},
	})
}

func (s *Schema) counterpartyField(objType *graphql.Object, svc func() *partyapp.Service) *graphql.Field {
	return &graphql.Field{
		Type: objType,
		Args: graphql.FieldConfigArgument{
			"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
		},
		Resolve: func(p graphql.ResolveParams) (any, error) {
			id, err := uuidArg(p, "id")
			if err != nil {
				return nil, err
			}
			counterparty, err := svc().GetByID(p.Context, id)
			if err != nil {
				return nil, s.localize(p.Context, err)
			}
			return counterpartyToMap(*counterparty), nil
		},
	}
}

func (s *Schema) mutationType() *graphql.Object {
	paymentInput := paymentInputType("PaymentInput")
	paymentEchoInput := paymentInputType("PaymentEchoInput")

	creditorInput := counterpartyInputType("CreditorInput")
	debtorInput := counterpartyInputType("DebtorInput")

	createPayment := func(p graphql.ResolveParams, persist func(context.Context, paymentapp.CreatePaymentRequest) (*paymentapp.PaymentResponse, error)) (any, error) {
		req, err := paymentRequestFromInput(p.Args["input"].(map[string]any))
		if err != nil {
			return nil, err
		}
		created, err := persist(p.Context, req)
		if err != nil {
			return nil, s.localize(p.Context, err)
		}
		return paymentToMap(*created), nil
	}

	createCounterparty := func(p graphql.ResolveParams, svc *partyapp.Service) (any, error) {
		input := p.Args["input"].(map[string]any)
		req := partyapp.CreateCounterpartyRequest{
			Name:          input["name"].(string),
			AccountNumber: input["accountNumber"].(string),
			BankCode:      input["bankCode"].(string),
		}
		if v, ok := input["address"].(string); ok {
			req.Address = v
		}
		if v, ok := input["email"].(string); ok {
			req.Email = v
		}
		created, err := svc.Create(p.Context, req)
		if err != nil {
			return nil, s.localize(p.Context, err)
		}
		return counterpartyToMap(*created), nil
	}

	deleteByID := func(p graphql.ResolveParams, del func(context.Context, uuid.UUID) error) (any, error) {
		id, err := uuidArg(p, "id")
		if err != nil {
			return nil, err
		}
		if err := del(p.Context, id); err != nil {
			return nil, s.localize(p.Context, err)
		}
		return true, nil
	}

	idArg := graphql.FieldConfigArgument{
		"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
	}

	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createPayment": &graphql.Field{
				Type: graphql.NewNonNull(s.paymentType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(paymentInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return createPayment(p, s.payments.Create)
				},
			},
			"echoPayment": &graphql.Field{
				Type: graphql.NewNonNull(s.paymentType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(paymentEchoInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return createPayment(p, s.payments.Echo)
				},
			},
			"deletePayment": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return deleteByID(p, s.payments.Delete)
				},
			},
			"createCreditor": &graphql.Field{
				Type: graphql.NewNonNull(s.creditorType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(creditorInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return createCounterparty(p, s.creditors)
				},
			},
			"deleteCreditor": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return deleteByID(p, s.creditors.Delete)
				},
			},
			"createDebtor": &graphql.Field{
				Type: graphql.NewNonNull(s.debtorType),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(debtorInput)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return createCounterparty(p, s.debtors)
				},
			},
			"deleteDebtor": &graphql.Field{
				Type: graphql.NewNonNull(graphql.Boolean),
				Args: idArg,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return deleteByID(p, s.debtors.Delete)
				},
			},
		},
	})
}

func paymentInputType(name string) *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: name,
		Fields: graphql.InputObjectConfigFieldMap{
			"amount":     &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Float)},
			"currency":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"status":     &graphql.InputObjectFieldConfig{Type: graphql.String},
			"creditorId": &graphql.InputObjectFieldConfig{Type: graphql.String},
			"debtorId":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
}

func counterpartyInputType(name string) *graphql.InputObject {
	return graphql.NewInputObject(graphql.InputObjectConfig{
		Name: name,
		Fields: graphql.InputObjectConfigFieldMap{
			"name":          &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"accountNumber": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"bankCode":      &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
			"address":       &graphql.InputObjectFieldConfig{Type: graphql.String},
			"email":         &graphql.InputObjectFieldConfig{Type: graphql.String},
		},
	})
}

func paymentRequestFromInput(input map[string]any) (paymentapp.CreatePaymentRequest, error) {
	req := paymentapp.CreatePaymentRequest{
		Amount:   decimal.NewFromFloat(input["amount"].(float64)),
		Currency: input["currency"].(string),
	}
	if v, ok := input["status"].(string); ok {
		req.Status = v
	}
	if v, ok := input["creditorId"].(string); ok && v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return req, err
		}
		req.CreditorID = &id
	}
	if v, ok := input["debtorId"].(string); ok && v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			return req, err
		}
		req.DebtorID = &id
	}
	return req, nil
}
