package constvars

const (
	MongoCollectionUsers        = "users"
	MongoCollectionDoctors      = "doctors"
	MongoCollectionAppointments = "appointments"
)

const (
	MongoFieldID          = "_id"
	MongoFieldSlotsBooked = "slots_booked"
	MongoFieldAvailable   = "available"
	MongoFieldState       = "state"
	MongoFieldCancelled   = "cancelled"
	MongoFieldIsCompleted = "isCompleted"
	MongoFieldPayment     = "payment"
	MongoFieldUserID      = "userId"
	MongoFieldDoctorID    = "docId"
	MongoFieldCreatedAt   = "createdAt"
	MongoFieldUpdatedAt   = "updatedAt"
	MongoFieldSlotDate    = "slotDate"
	MongoFieldSlotTime    = "slotTime"
	MongoFieldOrderID     = "paymentOrderId"
)
