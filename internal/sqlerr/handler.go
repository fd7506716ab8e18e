package sqlerr

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/deppfellow/storefront/internal/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ConvertPgError converts a raw Postgres error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// tableNamer is implemented by lookup errors that know which table missed,
// e.g. repository.NotFoundError.
type tableNamer interface {
	TableName() string
}

// constraintMessages holds client messages for the constraints the schema names.
var constraintMessages = map[string]string{
	"same_customer":     "A customer with these details already exists",
	"products_name_key": "A product with this name already exists",
	"orders_pkey":       "An order with this id already exists",
	"customers_pkey":    "A customer with this id already exists",
	"products_pkey":     "A product with this id already exists",
}

// generateErrorCode builds <DOMAIN>_<ACTION>, e.g. PRODUCT_ALREADY_EXISTS.
func generateErrorCode(entity string, errType Code) string {
	domain := strings.ToUpper(strings.ReplaceAll(entity, " ", "_"))
	if domain == "" {
		domain = "RECORD"
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

func formatUserFriendlyMessage(sqlErr *Error) string {
	if msg, ok := constraintMessages[sqlErr.ConstraintName]; ok {
		return msg
	}

	entityName := humanizeText(getEntityName(sqlErr.TableName, sqlErr.ColumnName))

	switch sqlErr.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("The referenced %s does not exist", strings.ToLower(entityName))
	case UniqueViolation:
		return fmt.Sprintf("A %s with this identifier already exists", strings.ToLower(entityName))
	case NotNullViolation:
		fieldName := humanizeText(sqlErr.ColumnName)
		if fieldName == "" {
			fieldName = "field"
		}
		return fmt.Sprintf("The %s is required", fieldName)
	case CheckViolation:
		if fieldName := humanizeText(sqlErr.ColumnName); fieldName != "" {
			return fmt.Sprintf("The %s value does not meet required conditions", fieldName)
		}
		return "One or more values do not meet required conditions"
	default:
		return "An error occurred while processing your request"
	}
}

// getEntityName infers the entity an error refers to.
//
// Reference columns win over the table name: a foreign key failure on
// orders.customerid is about a customer, not an order. Postgres folds the
// unquoted customerId/productId columns to lower case, so both "customerid"
// and "customer_id" are recognised.
func getEntityName(tableName, columnName string) string {
	col := strings.ToLower(columnName)
	for _, suffix := range []string{"_id", "id"} {
		if col != suffix && strings.HasSuffix(col, suffix) {
			return strings.TrimSuffix(col, suffix)
		}
	}

	if tableName != "" {
		entity := strings.ToLower(tableName)
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return entity
	}

	return "record"
}

// fkeyColumn recovers the referencing column from a default foreign key
// name such as orders_customerid_fkey. Postgres leaves ColumnName empty for
// foreign key violations.
func fkeyColumn(tableName, constraintName string) string {
	name := strings.TrimSuffix(constraintName, "_fkey")
	if name == constraintName {
		return ""
	}
	return strings.TrimPrefix(name, tableName+"_")
}

// humanizeText converts snake_case into Title Case ("first_name" -> "First Name").
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// HandleError converts a database error into an application-level error.
//
//   - *errs.HTTPError passes through unchanged.
//   - *pgconn.PgError becomes a 400 for constraint violations, 500 otherwise.
//   - connection failures become a 503.
//   - no-rows errors become a 404 naming the entity when the error knows its table.
//   - anything else becomes a 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		if sqlErr.Code == ForeignKeyViolation && sqlErr.ColumnName == "" {
			sqlErr.ColumnName = fkeyColumn(sqlErr.TableName, sqlErr.ConstraintName)
		}
		entity := getEntityName(sqlErr.TableName, sqlErr.ColumnName)
		if sqlErr.Code == UniqueViolation {
			// the table owns the unique key, the column list is irrelevant
			entity = getEntityName(sqlErr.TableName, "")
		}
		errorCode := generateErrorCode(entity, sqlErr.Code)
		userMessage := formatUserFriendlyMessage(sqlErr)

		switch sqlErr.Code {
		case ForeignKeyViolation:
			return errs.NewBadRequestError(userMessage, false, &errorCode, nil)
		case UniqueViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)
		case NotNullViolation:
			fieldErrors := []errs.FieldError{
				{
					Field: strings.ToLower(sqlErr.ColumnName),
					Error: "is required",
				},
			}
			return errs.NewBadRequestError(userMessage, true, &errorCode, fieldErrors)
		case CheckViolation:
			return errs.NewBadRequestError(userMessage, true, &errorCode, nil)
		case ConnectionFailure:
			return errs.NewServiceUnavailableError("The database is unavailable")
		default:
			return errs.NewInternalServerError()
		}
	}

	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return errs.NewServiceUnavailableError("The database is unavailable")
	}

	if errors.Is(err, pgx.ErrNoRows) || errors.Is(err, sql.ErrNoRows) {
		var named tableNamer
		if errors.As(err, &named) && named.TableName() != "" {
			entity := getEntityName(named.TableName(), "")
			code := strings.ToUpper(entity) + "_NOT_FOUND"
			return errs.NewNotFoundError(fmt.Sprintf("%s not found", humanizeText(entity)), true, &code)
		}
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}
