package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/sbhworks/indentflow/internal/sheet"
	"github.com/sbhworks/indentflow/internal/workflow"
)

func (r *Router) listPayments(w http.ResponseWriter, req *http.Request) {
	r.listStage(w, req, workflow.StagePayment)
}

// recordPayment settles an inspected indent. Multipart fields: billNo and
// amount (required), paymentDate, billImage (file). When a bill image is
// attached the mutation rides the upload-and-update action so the script
// stores the file and writes its URL into the bill-image column atomically.
func (r *Router) recordPayment(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseMultipartForm(maxImageSize + 1<<20); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid multipart payload")
		return
	}

	payment := workflow.Payment{
		BillNo:      req.FormValue("billNo"),
		Amount:      req.FormValue("amount"),
		PaymentDate: req.FormValue("paymentDate"),
	}
	if err := payment.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if payment.PaymentDate == "" {
		payment.PaymentDate = time.Now().Format("02/01/2006")
	}

	upload, err := r.readImageUpload(req, "billImage")
	if err != nil {
		respondRequestError(w, err)
		return
	}

	rec, err := r.targetRow(req, workflow.StagePayment)
	if err != nil {
		respondRequestError(w, err)
		return
	}

	action := sheet.ActionUpdate
	if upload != nil {
		action = sheet.ActionUploadAndUpdatePay
	}

	ack, err := r.submitMutation(req, sheet.Mutation{
		Action:    action,
		SheetName: r.cfg.Sheets.IndentSheet,
		RowIndex:  rec.RowIndex,
		RowData:   workflow.PaymentUpdate(payment, time.Now()),
		Upload:    upload,
	})
	if err != nil {
		log.Printf("Error recording payment for row %d: %v", rec.RowIndex, err)
		respondMutationError(w, err, "Failed to record payment")
		return
	}

	respondJSON(w, http.StatusOK, ack)
}
