package handlers

import (
	"errors"
	"net/http"
	"strings"

	"policy_checkout/internal/usecase"
	"policy_checkout/pkg"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

var (
	errInvalidRequest     = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errTransactionBlocked = pkg.NewDomainErrorSimple("TRANSACTION_BLOCKED", "transaction blocked", http.StatusForbidden)
)

// mapCheckoutError turns a use case failure into the HTTP envelope. Internal
// causes never reach the body.
func mapCheckoutError(err error) *pkg.AppError {
	if errors.Is(err, usecase.ErrTransactionBlocked) {
		return errTransactionBlocked
	}
	var ue *usecase.Error
	if !errors.As(err, &ue) {
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
	code := strings.ToUpper(ue.Code)
	switch ue.Kind {
	case usecase.KindValidation:
		return pkg.NewDomainError(code, ue.Message, err, http.StatusBadRequest)
	case usecase.KindNotFound:
		return pkg.NewDomainError(code, ue.Message, err, http.StatusNotFound)
	case usecase.KindPolicyViolation:
		return pkg.NewDomainError(code, ue.Message, err, http.StatusUnprocessableEntity)
	case usecase.KindConflict:
		return pkg.NewDomainError(code, ue.Message, err, http.StatusConflict)
	case usecase.KindProvider:
		return pkg.NewDomainError(code, ue.Message, err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, log *logrus.Entry, op string, err error) {
	appErr := mapCheckoutError(err)
	entry := log.WithError(err).WithFields(logrus.Fields{"op": op, "status": appErr.HTTPStatus, "code": appErr.Code})
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		entry.Error("[http][handler] request failed")
	} else {
		entry.Info("[http][handler] request rejected")
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func writeBindError(c *gin.Context, log *logrus.Entry, op string, err error) {
	log.WithError(err).WithField("op", op).Info("[http][handler] invalid payload")
	c.JSON(errInvalidRequest.HTTPStatus, errInvalidRequest.ToHTTPError())
}
